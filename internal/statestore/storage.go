package statestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
)

// StorageInterface is the durable home for the slice of client state that
// survives a reload: view preferences, session token and profile.
type StorageInterface interface {
	Load() (*State, error)
	Save(state *State) error
}

// FileStorage keeps the persisted state in one JSON file.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (storage *FileStorage) Load() (*State, error) {
	bytes, err := os.ReadFile(storage.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	state := &State{}
	if err := json.Unmarshal(bytes, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Save writes through a temp file so a crash mid-write cannot corrupt the
// previous state.
func (storage *FileStorage) Save(state *State) error {
	bytes, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(storage.path), global.DefaultDirectoryPermission); err != nil {
		return err
	}
	tmpPath := storage.path + ".tmp"
	if err := os.WriteFile(tmpPath, bytes, global.DefaultFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmpPath, storage.path)
}
