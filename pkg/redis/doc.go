// Package redis wraps the go-redis client with startup connection retries
// and a health check closure matching the platform's probe contract.
//
// Config is populated from REDIS_* environment variables. The platform uses
// Redis for the session store; see pkg/session.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil { ... }
//	defer client.Close()
package redis
