// Package config loads typed configuration structs from environment variables
// using github.com/caarlos0/env/v11, with optional .env files read by
// github.com/joho/godotenv.
//
// Each component declares its own Config with env tags (pg.Config,
// redis.Config, httpserver.Config, ...) and the entrypoint loads them:
//
//	pgCfg := config.MustLoad[pg.Config]()
//	httpCfg, err := config.Load[httpserver.Config]()
package config
