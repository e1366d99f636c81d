// Package config loads application configuration from environment variables
// into tagged Go structs, with per-type caching.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - Load parses the environment into any struct using `env` field tags and
//     caches the result, so each configuration type is parsed once per process.
//   - LoadEnv loads one or more .env files before parsing; Load itself falls
//     back to ./.env when present.
//   - MustLoad and MustLoadEnv panic on failure, for configuration the
//     process cannot start without.
//   - ResetCache and ForceReloadConfig support tests that mutate the
//     environment.
//
// Sentinel errors (ErrParsingConfig, ErrLoadingEnvFile, ErrNilPointer) can be
// matched with errors.Is.
//
//	type ServerConfig struct {
//	    Addr            string        `env:"SERVER_ADDR" envDefault:":8080"`
//	    ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
