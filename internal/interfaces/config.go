// Package interfaces
package interfaces

import "github.com/flybg-dev/flyingsites/internal/interfaces/config"

type ConfigManagerInterface interface {
	Config() *config.Config
	SaveConfig() error
}
