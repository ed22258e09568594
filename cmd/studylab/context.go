package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/chat"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/config"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/logging"
	"github.com/NAG1RA/tumo-ai-teens-hackathon/internal/studio"
)

type commandContext struct {
	configFlag   *string
	providerFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, providerFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		providerFlag: providerFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) provider() string {
	if c.providerFlag == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.providerFlag))
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// chatService builds the completion stack. The requested provider must have
// credentials; other configured providers stay available to the server.
func (c *commandContext) chatService() (*chat.Service, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.RequireProvider(c.provider()); err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	registry, err := chat.NewRegistryFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return chat.NewService(registry, logger, chat.WithTemperature(cfg.LLM.Temperature)), logger, nil
}

func (c *commandContext) studio() (*studio.Studio, error) {
	svc, logger, err := c.chatService()
	if err != nil {
		return nil, err
	}
	return studio.New(svc, logger, studio.WithProvider(c.provider())), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
