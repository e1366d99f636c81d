package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// typeCache stores one parsed configuration value per concrete struct type,
// so every component sees the same snapshot of the environment.
type typeCache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	cache = &typeCache{values: make(map[string]any)}

	defaultEnvOnce = new(sync.Once)
)

// LoadEnv loads variables from the given .env files into the process
// environment. With no arguments it loads ./.env. Variables already present
// in the environment keep precedence over file values.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure. Use it in main for env
// files the process cannot start without.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Load parses environment variables into v based on its `env` field tags.
// The first call for a given struct type parses the environment and caches
// the result; subsequent calls return the cached snapshot. A ./.env file, if
// present, is loaded once per process before the first parse.
//
// Example:
//
//	type DatabaseConfig struct {
//		Host string `env:"DB_HOST" envDefault:"localhost"`
//		Port int    `env:"DB_PORT" envDefault:"5432"`
//		URL  string `env:"DB_URL,required"`
//	}
//
//	var cfg DatabaseConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	defaultEnvOnce.Do(func() {
		// A missing .env file is fine; real deployments use the process env.
		_ = godotenv.Load()
	})

	key := typeKey[T]()

	cache.mu.RLock()
	cached, ok := cache.values[key]
	cache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	// Another goroutine may have parsed this type while we waited.
	if cached, ok := cache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache.values[key] = *v

	return nil
}

// MustLoad is Load that panics on failure. Use it for configuration the
// application cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

// ForceReloadConfig re-parses the environment for v's type, replacing any
// cached snapshot. Intended for tests that mutate the environment.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache.values[typeKey[T]()] = *v

	return nil
}

// ResetCache drops all cached configuration snapshots. Intended for tests.
func ResetCache() {
	cache.mu.Lock()
	cache.values = make(map[string]any)
	cache.mu.Unlock()
}

// typeKey returns a stable identifier for the generic type T.
func typeKey[T any]() string {
	var zero T
	if t := reflect.TypeOf(zero); t != nil {
		return t.String()
	}
	return fmt.Sprintf("%T", *new(T))
}
