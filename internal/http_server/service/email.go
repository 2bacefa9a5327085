// Package service
package service

import (
	"errors"
	"html/template"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"gopkg.in/gomail.v2"
)

var (
	emailService *EmailService
	once         sync.Once
)

type EmailService struct {
	logger       log.LoggerInterface
	mu           sync.Mutex
	lastSendTime map[string]time.Time
	config       *config.EmailConfig
}

type ActivationTemplateData struct {
	Email   string
	Link    string
	Expired string
}

func NewEmailService(logger log.LoggerInterface, config *config.EmailConfig) *EmailService {
	once.Do(func() {
		emailService = &EmailService{
			logger:       logger,
			config:       config,
			lastSendTime: make(map[string]time.Time),
		}
	})
	return emailService
}

var (
	ErrEmailSendInterval = errors.New("email send interval")
	ErrRenderingTemplate = errors.New("error rendering template")
)

func (emailService *EmailService) RenderTemplate(template *template.Template, data interface{}) (string, error) {
	if template == nil {
		return "", ErrRenderingTemplate
	}
	var sb strings.Builder
	if err := template.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// SendActivationEmail mails the activation link for a freshly issued token.
// Sends to the same address are throttled by the configured interval, and
// skipped entirely when no SMTP server is configured.
func (emailService *EmailService) SendActivationEmail(email string, token string, expiresAt time.Time) error {
	if emailService.config.EmailServer == nil {
		emailService.logger.WarnF("SMTP not configured, skipping activation email for %s", email)
		return nil
	}
	email = strings.ToLower(email)

	emailService.mu.Lock()
	if lastSendTime, ok := emailService.lastSendTime[email]; ok {
		if time.Since(lastSendTime) < emailService.config.SendDuration {
			emailService.mu.Unlock()
			return ErrEmailSendInterval
		}
	}
	emailService.lastSendTime[email] = time.Now()
	emailService.mu.Unlock()

	data := &ActivationTemplateData{
		Email:   email,
		Link:    emailService.config.Template.ActivationLinkBase + "?token=" + token,
		Expired: strconv.Itoa(int(time.Until(expiresAt).Hours())),
	}

	message, err := emailService.RenderTemplate(emailService.config.Template.ActivationTemplate, data)
	if err != nil {
		emailService.logger.WarnF("Error rendering activation template: %v", err)
		return ErrRenderingTemplate
	}

	m := gomail.NewMessage()
	m.SetHeader("From", emailService.config.Username)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Активация на профил / Account activation")
	m.SetBody("text/html", message)

	emailService.logger.InfoF("Sending activation email to %s", email)

	return emailService.config.EmailServer.DialAndSend(m)
}
