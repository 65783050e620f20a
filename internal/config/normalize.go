package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStore(); err != nil {
		return err
	}
	if err := c.normalizeAPI(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeStore() error {
	var err error
	if strings.TrimSpace(c.Store.RootDir) == "" {
		c.Store.RootDir = defaultRootDir
	}
	if c.Store.RootDir, err = expandPath(c.Store.RootDir); err != nil {
		return fmt.Errorf("store.root_dir: %w", err)
	}
	if strings.TrimSpace(c.Store.IndexDir) == "" {
		c.Store.IndexDir = defaultIndexDir
	}
	if c.Store.IndexDir, err = expandPath(c.Store.IndexDir); err != nil {
		return fmt.Errorf("store.index_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAPI() error {
	if strings.TrimSpace(c.API.Bind) == "" {
		c.API.Bind = defaultAPIBind
	}
	if c.API.ReadTimeout <= 0 {
		c.API.ReadTimeout = defaultReadTimeout
	}
	if c.API.WriteTimeout <= 0 {
		c.API.WriteTimeout = defaultWriteTimeout
	}
	if c.API.ShutdownTimeout <= 0 {
		c.API.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.API.MaxUploadBytes <= 0 {
		c.API.MaxUploadBytes = defaultMaxUploadBytes
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		if expanded, err := expandPath(c.Logging.Dir); err == nil {
			c.Logging.Dir = expanded
		}
	}
}
