// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"os"
	"path/filepath"
)

type HttpServerStore struct {
	StoreType       int                       `json:"store_type"` // 0: local disk, 1: Aliyun OSS, 2: Tencent COS
	Region          string                    `json:"region"`
	Bucket          string                    `json:"bucket"`
	AccessId        string                    `json:"access_id"`
	AccessKey       string                    `json:"access_key"`
	CdnDomain       string                    `json:"cdn_domain"`
	UseInternalUrl  bool                      `json:"use_internal_url"`
	LocalStorePath  string                    `json:"local_store_path"`
	RemoteStorePath string                    `json:"remote_store_path"`
	ImageLimit      *HttpServerStoreFileLimit `json:"image_limit"`
	ThumbnailWidths []int                     `json:"thumbnail_widths"`
}

type HttpServerStoreFileLimit struct {
	MaxFileSize    int64    `json:"max_file_size"`
	AllowedFileExt []string `json:"allowed_file_ext"`
	StorePrefix    string   `json:"store_prefix"`
}

func defaultHttpServerStore() *HttpServerStore {
	return &HttpServerStore{
		StoreType:       0,
		Region:          "",
		Bucket:          "",
		AccessId:        "",
		AccessKey:       "",
		CdnDomain:       "",
		UseInternalUrl:  false,
		LocalStorePath:  "uploads",
		RemoteStorePath: "",
		ImageLimit: &HttpServerStoreFileLimit{
			MaxFileSize:    10 * 1024 * 1024,
			AllowedFileExt: []string{".jpg", ".jpeg", ".png", ".bmp"},
			StorePrefix:    "images",
		},
		ThumbnailWidths: []int{360, 1080},
	}
}

func (config *HttpServerStore) checkValid(_ log.LoggerInterface) *ValidResult {
	if config.ImageLimit.MaxFileSize < 0 {
		return ValidFail(errors.New("invalid json field http_server.store.image_limit.max_file_size, cannot be negative"))
	}
	if config.LocalStorePath == "" {
		return ValidFail(errors.New("invalid json field http_server.store.local_store_path, path cannot be empty"))
	}
	if err := os.MkdirAll(filepath.Join(filepath.Clean(config.LocalStorePath), config.ImageLimit.StorePrefix), global.DefaultDirectoryPermission); err != nil {
		return ValidFailWith(fmt.Errorf("error while creating local store path(%s)", config.LocalStorePath), err)
	}
	for _, width := range config.ThumbnailWidths {
		if width <= 0 {
			return ValidFail(fmt.Errorf("invalid json field http_server.store.thumbnail_widths, %d is not a valid width", width))
		}
	}
	switch config.StoreType {
	case 0:
		// local storage needs nothing else
	case 1, 2:
		if config.Region == "" {
			return ValidFail(errors.New("invalid json field http_server.store.region, region cannot be empty"))
		}
		if config.Bucket == "" {
			return ValidFail(errors.New("invalid json field http_server.store.bucket, bucket cannot be empty"))
		}
		if config.AccessId == "" {
			return ValidFail(errors.New("invalid json field http_server.store.access_id, access_id cannot be empty"))
		}
		if config.AccessKey == "" {
			return ValidFail(errors.New("invalid json field http_server.store.access_key, access_key cannot be empty"))
		}
	default:
		return ValidFail(fmt.Errorf("invalid json field http_server.store.store_type %d, only support 0, 1, 2", config.StoreType))
	}
	return ValidPass()
}
