// Package config
package config

import "github.com/flybg-dev/flyingsites/internal/interfaces/log"

type SSLConfig struct {
	Enable          bool   `json:"enable"`
	EnableHSTS      bool   `json:"enable_hsts"`
	ForceSSL        bool   `json:"force_ssl"`
	HstsExpiredTime int    `json:"hsts_expired_time"`
	IncludeDomain   bool   `json:"include_domain"`
	CertFile        string `json:"cert_file"`
	KeyFile         string `json:"key_file"`
}

func defaultSSLConfig() *SSLConfig {
	return &SSLConfig{
		// 60 days
		HstsExpiredTime: 5184000,
	}
}

// checkValid downgrades inconsistent SSL settings instead of refusing to
// start: a missing cert pair disables HTTPS, and the HSTS and force-SSL
// flags only take effect while HTTPS is on.
func (config *SSLConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if config.Enable && (config.CertFile == "" || config.KeyFile == "") {
		logger.WarnF("HTTPS enabled without a cert/key pair (cert: %q, key: %q), serving plain HTTP", config.CertFile, config.KeyFile)
		config.Enable = false
	}
	if !config.Enable && config.EnableHSTS {
		logger.Warn("HSTS ignored while HTTPS is disabled")
		config.EnableHSTS = false
		config.HstsExpiredTime = 0
		config.IncludeDomain = false
	}
	if !config.Enable && config.ForceSSL {
		logger.Warn("Force-SSL ignored while HTTPS is disabled")
		config.ForceSSL = false
	}
	return ValidPass()
}
