package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/chat"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set llm.api_key (or export OPENAI_API_KEY) before running studylab.")
			return nil
		},
	}

	cmd.Flags().StringVar(&targetPath, "path", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Long:        "Validate the configuration file. With --check, also ping every configured provider.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolved, exists, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", resolved)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			providers := cfg.ConfiguredProviders()
			if len(providers) == 0 {
				fmt.Fprintf(out, "Warning: no provider credentials found (%v)\n", cfg.RequireProvider(""))
			} else {
				fmt.Fprintf(out, "Providers: %s (default %s)\n", strings.Join(providers, ", "), cfg.LLM.Provider)
			}
			fmt.Fprintln(out, "Configuration valid")
			if !check {
				return nil
			}
			return checkProviders(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Ping each configured provider with a small JSON request")
	return cmd
}

func checkProviders(cmd *cobra.Command, cfg *config.Config) error {
	registry, err := chat.NewRegistryFromConfig(cfg)
	if err != nil {
		return err
	}
	results := registry.Check(cmd.Context())
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		state := "ok"
		if !res.OK {
			state = "failed: " + res.Error
		}
		rows = append(rows, []string{res.Name, res.Model, state, res.Duration.Round(time.Millisecond).String()})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Provider", "Model", "Status", "Latency"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}))
	if !chat.Healthy(results) {
		return fmt.Errorf("provider check failed")
	}
	return nil
}
