// Package config
package config

import (
	"errors"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"gopkg.in/gomail.v2"
	"time"
)

type EmailConfig struct {
	Host                      string               `json:"host"`
	Port                      int                  `json:"port"`
	EmailServer               *gomail.Dialer       `json:"-"`
	Username                  string               `json:"username"`
	Password                  string               `json:"password"`
	ActivationExpiredTime     string               `json:"activation_expired_time"`
	ActivationExpiredDuration time.Duration        `json:"-"`
	SendInterval              string               `json:"send_interval"`
	SendDuration              time.Duration        `json:"-"`
	Template                  *EmailTemplateConfig `json:"template"`
}

func defaultEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:                  "",
		Port:                  465,
		Username:              "",
		Password:              "",
		ActivationExpiredTime: "48h",
		SendInterval:          "1m",
		Template:              defaultEmailTemplateConfig(),
	}
}

func (config *EmailConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.ActivationExpiredTime); err != nil {
		return ValidFailWith(errors.New("invalid json field http_server.email.activation_expired_time"), err)
	} else {
		config.ActivationExpiredDuration = duration
	}

	if duration, err := time.ParseDuration(config.SendInterval); err != nil {
		return ValidFailWith(errors.New("invalid json field http_server.email.send_interval"), err)
	} else {
		config.SendDuration = duration
	}

	if result := config.Template.checkValid(logger); result.IsFail() {
		return result
	}

	if config.Host == "" {
		logger.Warn("SMTP host is empty, activation emails will not be delivered")
		return ValidPass()
	}

	config.EmailServer = gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dial, err := config.EmailServer.Dial()
	if err != nil {
		return ValidFailWith(errors.New("connecting to smtp server fail"), err)
	}
	_ = dial.Close()

	return ValidPass()
}
