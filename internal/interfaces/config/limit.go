// Package config
package config

import (
	"errors"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"time"
)

type HttpServerLimit struct {
	RateLimit             int           `json:"rate_limit"`
	RateLimitTime         string        `json:"rate_limit_time"`
	RateLimitDuration     time.Duration `json:"-"`
	UsernameLengthMin     int           `json:"username_length_min"`
	UsernameLengthMax     int           `json:"username_length_max"`
	PasswordLengthMin     int           `json:"password_length_min"`
	PasswordLengthMax     int           `json:"password_length_max"`
	EmailLengthMin        int           `json:"email_length_min"`
	EmailLengthMax        int           `json:"email_length_max"`
	SiteTitleLengthMax    int           `json:"site_title_length_max"`
	GalleryImagesMax      int           `json:"gallery_images_max"`
	BulkAccountsMax       int           `json:"bulk_accounts_max"`
	ActivationTokenLength int           `json:"activation_token_length"`
}

func defaultHttpServerLimit() *HttpServerLimit {
	return &HttpServerLimit{
		RateLimit:             15,
		RateLimitTime:         "1m",
		UsernameLengthMin:     3,
		UsernameLengthMax:     64,
		PasswordLengthMin:     8,
		PasswordLengthMax:     64,
		EmailLengthMin:        6,
		EmailLengthMax:        128,
		SiteTitleLengthMax:    128,
		GalleryImagesMax:      64,
		BulkAccountsMax:       50,
		ActivationTokenLength: 32,
	}
}

func (config *HttpServerLimit) checkValid(_ log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.RateLimitTime); err != nil {
		return ValidFailWith(errors.New("invalid json field http_server.limits.rate_limit_time"), err)
	} else {
		config.RateLimitDuration = duration
	}
	if config.ActivationTokenLength < 16 {
		return ValidFail(errors.New("invalid json field http_server.limits.activation_token_length, must be at least 16"))
	}
	return ValidPass()
}
