package base

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	. "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/flybg-dev/flyingsites/internal/utils"
)

func readConfig(logger log.LoggerInterface) (*Config, *ValidResult) {
	config := DefaultConfig()

	if bytes, err := os.ReadFile(*global.ConfigFilePath); err != nil {
		// first run, write the defaults and ask the operator to review them
		if err := saveConfig(config); err != nil {
			return nil, ValidFailWith(errors.New("could not write the default configuration file"), err)
		}
		return nil, ValidFail(errors.New("configuration file created with defaults, review it and start again"))
	} else if err := json.Unmarshal(bytes, config); err != nil {
		return nil, ValidFailWith(errors.New("configuration file is not valid JSON"), err)
	} else if result := config.CheckValid(logger); result.IsFail() {
		return nil, result
	}
	return config, ValidPass()
}

func saveConfig(config *Config) error {
	if writer, err := os.OpenFile(*global.ConfigFilePath, os.O_WRONLY|os.O_CREATE, global.DefaultFilePermissions); err != nil {
		return err
	} else if data, err := json.MarshalIndent(config, "", "\t"); err != nil {
		return err
	} else if _, err = writer.Write(data); err != nil {
		return err
	} else if err := writer.Close(); err != nil {
		return err
	}
	return nil
}

// Manager serves the parsed configuration and re-reads the file at most
// once per hour. A config that fails validation on re-read is fatal.
type Manager struct {
	config *utils.CachedValue[Config]
	logger log.LoggerInterface
}

func NewManager(logger log.LoggerInterface) *Manager {
	manager := &Manager{
		logger: logger,
	}
	manager.config = utils.NewCachedValue(time.Hour, manager.getConfig)
	return manager
}

func (manager *Manager) getConfig() *Config {
	if config, result := readConfig(manager.logger); result.IsFail() {
		manager.logger.Fatal(result.Error().Error())
		panic(result.OriginErr())
	} else {
		return config
	}
}

func (manager *Manager) Config() *Config {
	return manager.config.GetValue()
}

func (manager *Manager) SaveConfig() error {
	return saveConfig(manager.Config())
}
