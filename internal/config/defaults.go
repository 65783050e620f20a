package config

const (
	defaultRootDir         = "~/.local/share/reelstore/saved"
	defaultIndexDir        = "~/.local/share/reelstore/index"
	defaultLogDir          = "~/.local/share/reelstore/logs"
	defaultAPIBind         = "127.0.0.1:4343"
	defaultReadTimeout     = 30
	defaultWriteTimeout    = 60
	defaultShutdownTimeout = 10
	defaultMaxUploadBytes  = 64 << 20
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Store: Store{
			RootDir:  defaultRootDir,
			IndexDir: defaultIndexDir,
		},
		API: API{
			Bind:            defaultAPIBind,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			MaxUploadBytes:  defaultMaxUploadBytes,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
