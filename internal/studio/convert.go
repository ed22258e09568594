package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/services/llm"
)

// Languages lists the conversion targets offered by the converter.
var Languages = []string{
	"javascript", "python", "java", "c++", "c#", "ruby", "go", "swift",
	"typescript", "php", "rust", "kotlin", "scala", "r", "dart",
}

const (
	defaultSourceLanguage = "javascript"
	defaultTargetLanguage = "python"
)

// Conversion is converted code plus a short explanation of the differences.
type Conversion struct {
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
	ConvertedCode  string `json:"convertedCode"`
	Explanation    string `json:"explanation"`
}

const convertPrompt = `Convert the following %s code to %s:

%s

Provide the converted code in %s and a brief explanation of the key differences between the two implementations.

Format your response as a JSON object with two properties:
1. "convertedCode": The full converted code as a string
2. "explanation": A brief explanation of the key differences and conversion decisions

Only return the JSON object, nothing else.`

// ConvertPrompt builds the code conversion prompt.
func ConvertPrompt(source, target, code string) string {
	return fmt.Sprintf(convertPrompt, source, target, code, target)
}

// Convert translates code between languages. Empty languages default to
// javascript and python.
func (s *Studio) Convert(ctx context.Context, source, target, code string) (Conversion, error) {
	if strings.TrimSpace(code) == "" {
		_, err := required(ToolConvert, "code", code)
		return Conversion{}, err
	}
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		source = defaultSourceLanguage
	}
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		target = defaultTargetLanguage
	}
	reply, logger, err := s.ask(ctx, ToolConvert, ConvertPrompt(source, target, code))
	if err != nil {
		return Conversion{}, err
	}
	conv, structured := ParseConversion(reply)
	if !structured {
		logger.Debug("conversion reply was not JSON; using it verbatim")
	}
	conv.SourceLanguage = source
	conv.TargetLanguage = target
	logger.Info("code converted",
		logging.String("source", source),
		logging.String("target", target),
		logging.Bool("structured", structured),
	)
	return conv, nil
}

// ParseConversion reads the JSON reply. When it cannot be decoded the whole
// reply is the converted code and the explanation is empty; the second
// result reports which case applied.
func ParseConversion(reply string) (Conversion, bool) {
	var parsed struct {
		ConvertedCode string `json:"convertedCode"`
		Explanation   string `json:"explanation"`
	}
	if err := llm.DecodeLLMJSON(reply, &parsed); err != nil {
		return Conversion{ConvertedCode: reply}, false
	}
	return Conversion{ConvertedCode: parsed.ConvertedCode, Explanation: parsed.Explanation}, true
}
