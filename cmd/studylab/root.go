package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var providerFlag string

	ctx := newCommandContext(&configFlag, &providerFlag)

	rootCmd := &cobra.Command{
		Use:           "studylab",
		Short:         "LLM-backed study tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "", "Completion provider (openai or gemini); defaults to llm.provider")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newExplainCommand(ctx))
	rootCmd.AddCommand(newSegmentCommand())
	rootCmd.AddCommand(newEquationsCommand())
	for _, cmd := range newToolCommands(ctx) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
