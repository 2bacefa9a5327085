// Package config
package config

import (
	"fmt"
	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
)

type Config struct {
	ConfigVersion string            `json:"config_version"`
	HttpServer    *HttpServerConfig `json:"http_server"`
	Database      *DatabaseConfig   `json:"database"`
}

func DefaultConfig() *Config {
	return &Config{
		ConfigVersion: global.ConfigVersion,
		HttpServer:    defaultHttpServerConfig(),
		Database:      defaultDatabaseConfig(),
	}
}

func (c *Config) CheckValid(logger log.LoggerInterface) *ValidResult {
	if c.ConfigVersion != global.ConfigVersion {
		return ValidFail(fmt.Errorf("config version mismatch, expected %s, got %s", global.ConfigVersion, c.ConfigVersion))
	}
	if result := c.Database.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.HttpServer.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}
