// Package config
package config

import (
	"errors"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/thanhpk/randstr"
	"time"
)

// JWTConfig controls session token signing. An empty secret is replaced
// with a random one on startup, which invalidates sessions across restarts.
type JWTConfig struct {
	Secret          string        `json:"secret"`
	ExpiresTime     string        `json:"expires_time"`
	ExpiresDuration time.Duration `json:"-"`
}

func defaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		Secret:      randstr.String(64),
		ExpiresTime: "168h",
	}
}

func (config *JWTConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.ExpiresTime); err != nil {
		return ValidFailWith(errors.New("invalid json field http_server.jwt.expires_time"), err)
	} else {
		config.ExpiresDuration = duration
	}

	if config.Secret == "" {
		config.Secret = randstr.String(64)
		logger.Warn("JWT secret missing, generated a random one; sessions will not survive a restart")
	}

	return ValidPass()
}
