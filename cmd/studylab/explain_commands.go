package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/analyzer"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/explain"
)

func newExplainCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "explain <phenomenon>",
		Short: "Explain the physics behind a phenomenon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, logger, err := ctx.chatService()
			if err != nil {
				return err
			}
			a := analyzer.New(svc, logger, analyzer.WithProvider(ctx.provider()))
			analysis, err := a.Analyze(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			switch {
			case asJSON:
				return writeJSON(cmd, analysis)
			case asMarkdown:
				fmt.Fprintln(cmd.OutOrStdout(), analysis.Document.Markdown())
				return nil
			}
			return printDocument(cmd, analysis.Document)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the full analysis as JSON")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Output canonical markdown instead of terminal text")
	return cmd
}

func newSegmentCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "segment [file]",
		Short:       "Segment an explanation read from a file or stdin",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc := explain.Resolve(text)
			if asJSON {
				return writeJSON(cmd, doc)
			}
			if doc.Empty() {
				return errors.New("input contains no text")
			}
			return printDocument(cmd, doc)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output blocks and spans as JSON")
	return cmd
}

func newEquationsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "equations",
		Short:       "List the named equations recognised in explanations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := explain.Default().Entries()
			if asJSON {
				return writeJSON(cmd, entries)
			}
			rows := make([][]string, 0, len(entries))
			for i, eq := range entries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					eq.Name,
					strings.Join(eq.Exprs, "\n"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Name", "Expression"}, rows, []columnAlignment{alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the dictionary as JSON")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// printDocument writes doc as terminal text. Math the renderer rejects is
// shown in its delimited source form and counted on stderr.
func printDocument(cmd *cobra.Command, doc explain.Document) error {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	renderer := mathRenderer(colorize)
	fallbacks := 0

	for i, block := range doc.Blocks {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if block.Kind == explain.BlockSection {
			fmt.Fprintln(out, styled(block.Header, ansiBold+ansiCyan, colorize))
		}
		rendered := explain.Render(block.Spans, renderer)
		for _, r := range rendered {
			if r.Fallback {
				fallbacks++
			}
		}
		if body := explain.PlainBody(rendered, block.BlockLevel); body != "" {
			fmt.Fprintln(out, body)
		}
	}
	if fallbacks > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), styled(fmt.Sprintf("%d expression(s) shown as source", fallbacks), ansiDim, shouldColorize(cmd.ErrOrStderr())))
	}
	return nil
}

// mathRenderer renders expressions as plain text, tinted when colorize is set.
// Fallback source text is left untinted.
func mathRenderer(colorize bool) explain.MathRenderer {
	plain := explain.PlainRenderer{}
	if !colorize {
		return plain
	}
	return explain.MathRendererFunc(func(expr string, display bool) (string, error) {
		line, err := plain.RenderMath(expr, display)
		if err != nil {
			return "", err
		}
		return styled(line, ansiCyan, true), nil
	})
}
