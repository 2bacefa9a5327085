// Package config
package config

import (
	"errors"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"html/template"
	"os"
)

const defaultActivationTemplate = `<html>
<body>
<p>Здравейте / Hello,</p>
<p>Създаден е профил за {{.Email}} в указателя на местата за летене.</p>
<p>An account for {{.Email}} was created in the flying sites directory.</p>
<p><a href="{{.Link}}">Активирайте профила си / Activate your account</a></p>
<p>Кодът е валиден {{.Expired}} часа. / The code is valid for {{.Expired}} hours.</p>
</body>
</html>`

type EmailTemplateConfig struct {
	ActivationTemplateFile string             `json:"activation_template_file"`
	ActivationTemplate     *template.Template `json:"-"`
	ActivationLinkBase     string             `json:"activation_link_base"`
}

func defaultEmailTemplateConfig() *EmailTemplateConfig {
	return &EmailTemplateConfig{
		ActivationTemplateFile: "",
		ActivationLinkBase:     "http://127.0.0.1:8654/activate",
	}
}

func (config *EmailTemplateConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	source := defaultActivationTemplate
	if config.ActivationTemplateFile != "" {
		bytes, err := os.ReadFile(config.ActivationTemplateFile)
		if err != nil {
			return ValidFailWith(errors.New("fail to load activation_template_file"), err)
		}
		source = string(bytes)
	}
	parse, err := template.New("activation").Parse(source)
	if err != nil {
		return ValidFailWith(errors.New("fail to parse activation template"), err)
	}
	config.ActivationTemplate = parse
	return ValidPass()
}
