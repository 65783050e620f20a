package main

import (
	"strings"
	"sync"

	"reelstore/internal/config"
	"reelstore/internal/index"
	"reelstore/internal/logging"
	"reelstore/internal/movies"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withService opens the index store, builds the movie service, and hands both
// to fn. The store closes when fn returns; every movie subcommand runs its
// work inside this scope.
func (c *commandContext) withService(fn func(*config.Config, *movies.Service) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	idx, err := index.Open(cfg)
	if err != nil {
		return err
	}
	defer idx.Close()

	logger, err := logging.New(logging.Options{
		Level:       "warn",
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		return err
	}

	svc, err := movies.NewService(cfg, idx, logger)
	if err != nil {
		return err
	}
	return fn(cfg, svc)
}
