package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
)

// FeedbackFallback replaces an empty feedback reply.
const FeedbackFallback = "Sorry, I had trouble generating feedback. Please try again!"

// Feedback is the study partner's critique of an explanation.
type Feedback struct {
	Subject  string `json:"subject"`
	Feedback string `json:"feedback"`
}

const feedbackPrompt = `As a friendly but critical study partner, give detailed feedback on this explanation of "%s":

"%s"

Provide thorough and honest feedback with a critical eye:
1. Identify specific weaknesses, gaps, or misconceptions in the explanation
2. Point out any logical flaws or areas that lack clarity
3. Suggest concrete improvements with examples of better phrasing
4. Highlight what was done well, but focus more on what could be improved
5. Rate the explanation on a scale of 1-10 and justify your rating

Be direct and honest but still supportive. Don't sugar-coat your critique, but maintain a constructive tone.
Your goal is to help your friend improve their explanation skills through honest feedback.`

// FeedbackPrompt builds the study-partner prompt.
func FeedbackPrompt(subject, explanation string) string {
	return fmt.Sprintf(feedbackPrompt, subject, explanation)
}

// Feedback critiques a student's explanation of subject.
func (s *Studio) Feedback(ctx context.Context, subject, explanation string) (Feedback, error) {
	subject, err := required(ToolFeedback, "subject", subject)
	if err != nil {
		return Feedback{}, err
	}
	if explanation, err = required(ToolFeedback, "explanation", explanation); err != nil {
		return Feedback{}, err
	}
	reply, logger, err := s.ask(ctx, ToolFeedback, FeedbackPrompt(subject, explanation))
	if err != nil {
		return Feedback{}, err
	}
	if strings.TrimSpace(reply) == "" {
		logging.WarnWithContext(logger, "empty feedback received", "studio_empty_answer")
		reply = FeedbackFallback
	}
	logger.Info("feedback generated", logging.String("subject", subject), logging.Int("chars", len(reply)))
	return Feedback{Subject: subject, Feedback: reply}, nil
}
