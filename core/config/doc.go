// Package config loads env-tagged structs with caching per type.
//
// Every package that needs settings owns a Config struct tagged for
// github.com/caarlos0/env; main loads them once:
//
//	var srv server.Config
//	config.MustLoad(&srv)
//
// A .env file in the working directory is loaded on first use and never
// overrides variables that are already set.
package config
