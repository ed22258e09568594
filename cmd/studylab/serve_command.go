package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/api"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
)

// requestMargin covers request decoding and response writing on top of the
// upstream completion timeout.
const requestMargin = 15 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, logger, err := ctx.chatService()
			if err != nil {
				return err
			}
			addr := strings.TrimSpace(bind)
			if addr == "" {
				addr = cfg.Server.Bind
			}

			server, err := api.New(api.Options{
				Bind:           addr,
				Chat:           svc,
				RequestTimeout: time.Duration(cfg.LLM.TimeoutSeconds)*time.Second + requestMargin,
				Logger:         logger,
			})
			if err != nil {
				return fmt.Errorf("create api server: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger.Info("studylab starting",
				logging.String("bind", addr),
				logging.String("providers", strings.Join(svc.Registry().Names(), ",")),
			)
			return server.Run(signalCtx)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (overrides server.bind)")
	return cmd
}
