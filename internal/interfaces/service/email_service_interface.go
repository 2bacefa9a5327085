package service

import "time"

// EmailServiceInterface sends templated mail. Implementations throttle
// per recipient and silently skip sending when no mail server is configured.
type EmailServiceInterface interface {
	SendActivationEmail(email string, token string, expiresAt time.Time) error
}
