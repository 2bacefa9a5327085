// Package store
package store

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
)

type LocalStoreService struct {
	logger log.LoggerInterface
	config *config.HttpServerStore
}

func NewLocalStoreService(logger log.LoggerInterface, config *config.HttpServerStore) *LocalStoreService {
	return &LocalStoreService{
		logger: logger,
		config: config,
	}
}

func (store *LocalStoreService) SaveImageFile(file *multipart.FileHeader) (*StoreInfo, *ApiStatus) {
	storeInfo, res := GenerateStoreInfo(store.config, file)
	if res != nil {
		return nil, res
	}
	src, err := file.Open()
	if err != nil {
		store.logger.ErrorF("LocalStoreService.SaveImageFile open file error: %v", err)
		return nil, &ErrFileSaveFail
	}
	defer func(src multipart.File) {
		_ = src.Close()
	}(src)
	dst, err := os.OpenFile(storeInfo.FilePath, os.O_WRONLY|os.O_CREATE, global.DefaultFilePermissions)
	if err != nil {
		store.logger.ErrorF("LocalStoreService.SaveImageFile create file error: %v", err)
		return nil, &ErrFileSaveFail
	}
	defer func(dst *os.File) {
		_ = dst.Close()
	}(dst)
	if _, err = io.Copy(dst, src); err != nil {
		store.logger.ErrorF("LocalStoreService.SaveImageFile copy file error: %v", err)
		return nil, &ErrFileSaveFail
	}

	if image, err := imaging.Open(storeInfo.FilePath); err == nil {
		bounds := image.Bounds()
		storeInfo.Width = bounds.Dx()
		storeInfo.Height = bounds.Dy()
	} else {
		store.logger.WarnF("LocalStoreService.SaveImageFile decode image error: %v", err)
	}
	return storeInfo, nil
}

// resolveStoredPath maps a bare filename onto the store directory. Base is
// taken to keep path traversal out of delete and thumbnail requests.
func (store *LocalStoreService) resolveStoredPath(filename string) (string, string) {
	name := filepath.Join(store.config.ImageLimit.StorePrefix, filepath.Base(filename))
	return filepath.Join(store.config.LocalStorePath, name), name
}

func (store *LocalStoreService) DeleteImageFile(filename string) *ApiStatus {
	filePath, _ := store.resolveStoredPath(filename)
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return &ErrFileNotFound
		}
		store.logger.ErrorF("LocalStoreService.DeleteImageFile remove file error: %v", err)
		return &ErrFileSaveFail
	}
	for _, width := range store.config.ThumbnailWidths {
		_ = os.Remove(thumbnailPath(filePath, width))
	}
	return nil
}

func thumbnailPath(filePath string, width int) string {
	ext := filepath.Ext(filePath)
	return fmt.Sprintf("%s_w%d%s", strings.TrimSuffix(filePath, ext), width, ext)
}

// GenerateThumbnails renders one resized copy per configured width next to
// the original. Images narrower than a target width are skipped.
func (store *LocalStoreService) GenerateThumbnails(filename string) ([]string, *ApiStatus) {
	filePath, name := store.resolveStoredPath(filename)
	image, err := imaging.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ErrFileNotFound
		}
		store.logger.ErrorF("LocalStoreService.GenerateThumbnails open image error: %v", err)
		return nil, &ErrFileSaveFail
	}

	thumbnails := make([]string, 0, len(store.config.ThumbnailWidths))
	for _, width := range store.config.ThumbnailWidths {
		if image.Bounds().Dx() <= width {
			continue
		}
		resized := imaging.Resize(image, width, 0, imaging.Lanczos)
		target := thumbnailPath(filePath, width)
		if err := imaging.Save(resized, target); err != nil {
			store.logger.ErrorF("LocalStoreService.GenerateThumbnails save thumbnail error: %v", err)
			return nil, &ErrFileSaveFail
		}
		thumbnails = append(thumbnails, strings.Replace(thumbnailPath(name, width), "\\", "/", -1))
	}
	return thumbnails, nil
}

func (store *LocalStoreService) SaveUploadImage(req *RequestUploadImage) *ApiResponse[ResponseUploadImage] {
	if req.Uid <= 0 {
		return NewApiResponse[ResponseUploadImage](&ErrNoPermission, Unsatisfied, nil)
	}
	storeInfo, res := store.SaveImageFile(req.File)
	if res != nil {
		return NewApiResponse[ResponseUploadImage](res, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessUploadFile, Unsatisfied, &ResponseUploadImage{
		FileSize:   req.File.Size,
		AccessPath: storeInfo.RemotePath,
		Width:      storeInfo.Width,
		Height:     storeInfo.Height,
	})
}

func (store *LocalStoreService) DeleteUploadImage(req *RequestDeleteImage) *ApiResponse[any] {
	if req.Uid <= 0 {
		return NewApiResponse[any](&ErrNoPermission, Unsatisfied, nil)
	}
	if res := store.DeleteImageFile(req.Filename); res != nil {
		return NewApiResponse[any](res, Unsatisfied, nil)
	}
	return NewApiResponse[any](&SuccessDeleteFile, Unsatisfied, nil)
}

func (store *LocalStoreService) GenerateImageThumbnails(req *RequestGenerateThumbnails) *ApiResponse[ResponseGenerateThumbnails] {
	if req.Uid <= 0 {
		return NewApiResponse[ResponseGenerateThumbnails](&ErrNoPermission, Unsatisfied, nil)
	}
	thumbnails, res := store.GenerateThumbnails(req.Filename)
	if res != nil {
		return NewApiResponse[ResponseGenerateThumbnails](res, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessThumbnails, Unsatisfied, &ResponseGenerateThumbnails{Thumbnails: thumbnails})
}
