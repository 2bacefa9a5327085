// Package store
package store

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/tencentyun/cos-go-sdk-v5"
)

// TencentCosStoreService stores locally first, then mirrors the file to COS.
type TencentCosStoreService struct {
	logger     log.LoggerInterface
	localStore *LocalStoreService
	config     *config.HttpServerStore
	endpoint   *url.URL
	client     *cos.Client
}

func NewTencentCosStoreService(
	logger log.LoggerInterface,
	config *config.HttpServerStore,
	localStore *LocalStoreService,
) *TencentCosStoreService {
	service := &TencentCosStoreService{logger: logger, localStore: localStore, config: config}
	bucketUrl, _ := url.Parse(fmt.Sprintf("https://%s.cos.%s.myqcloud.com", config.Bucket, strings.ToLower(config.Region)))
	serviceUrl, _ := url.Parse(fmt.Sprintf("https://cos.%s.myqcloud.com", strings.ToLower(config.Region)))
	baseUrl := &cos.BaseURL{BucketURL: bucketUrl, ServiceURL: serviceUrl}
	service.client = cos.NewClient(baseUrl, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  config.AccessId,
			SecretKey: config.AccessKey,
		},
	})
	if config.CdnDomain != "" {
		service.endpoint, _ = url.Parse(config.CdnDomain)
	} else {
		service.endpoint = service.client.BaseURL.BucketURL
	}
	return service
}

func (store *TencentCosStoreService) remotePath(name string) string {
	return strings.Replace(filepath.Join(store.config.RemoteStorePath, name), "\\", "/", -1)
}

func (store *TencentCosStoreService) SaveImageFile(file *multipart.FileHeader) (*StoreInfo, *ApiStatus) {
	storeInfo, res := store.localStore.SaveImageFile(file)
	if res != nil {
		return nil, res
	}

	storeInfo.RemotePath = store.remotePath(storeInfo.FileName)
	if _, err := store.client.Object.PutFromFile(context.Background(), storeInfo.RemotePath, storeInfo.FilePath, nil); err != nil {
		store.logger.ErrorF("TencentCosStoreService.SaveImageFile upload image to remote storage error: %v", err)
		return nil, &ErrFileUploadFail
	}
	return storeInfo, nil
}

func (store *TencentCosStoreService) DeleteImageFile(filename string) *ApiStatus {
	_, name := store.localStore.resolveStoredPath(filename)
	if res := store.localStore.DeleteImageFile(filename); res != nil {
		return res
	}
	if _, err := store.client.Object.Delete(context.Background(), store.remotePath(name)); err != nil {
		store.logger.ErrorF("TencentCosStoreService.DeleteImageFile delete image from remote storage error: %v", err)
		return &ErrFileUploadFail
	}
	return nil
}

func (store *TencentCosStoreService) GenerateThumbnails(filename string) ([]string, *ApiStatus) {
	thumbnails, res := store.localStore.GenerateThumbnails(filename)
	if res != nil {
		return nil, res
	}
	for _, thumbnail := range thumbnails {
		localPath := filepath.Join(store.config.LocalStorePath, filepath.FromSlash(thumbnail))
		if _, err := store.client.Object.PutFromFile(context.Background(), store.remotePath(thumbnail), localPath, nil); err != nil {
			store.logger.ErrorF("TencentCosStoreService.GenerateThumbnails upload thumbnail error: %v", err)
			return nil, &ErrFileUploadFail
		}
	}
	return thumbnails, nil
}

func (store *TencentCosStoreService) SaveUploadImage(req *RequestUploadImage) *ApiResponse[ResponseUploadImage] {
	if req.Uid <= 0 {
		return NewApiResponse[ResponseUploadImage](&ErrNoPermission, Unsatisfied, nil)
	}
	storeInfo, res := store.SaveImageFile(req.File)
	if res != nil {
		return NewApiResponse[ResponseUploadImage](res, Unsatisfied, nil)
	}
	accessUrl, err := url.JoinPath(store.endpoint.String(), storeInfo.RemotePath)
	if err != nil {
		return NewApiResponse[ResponseUploadImage](&ErrFilePathFail, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessUploadFile, Unsatisfied, &ResponseUploadImage{
		FileSize:   req.File.Size,
		AccessPath: accessUrl,
		Width:      storeInfo.Width,
		Height:     storeInfo.Height,
	})
}

func (store *TencentCosStoreService) DeleteUploadImage(req *RequestDeleteImage) *ApiResponse[any] {
	if req.Uid <= 0 {
		return NewApiResponse[any](&ErrNoPermission, Unsatisfied, nil)
	}
	if res := store.DeleteImageFile(req.Filename); res != nil {
		return NewApiResponse[any](res, Unsatisfied, nil)
	}
	return NewApiResponse[any](&SuccessDeleteFile, Unsatisfied, nil)
}

func (store *TencentCosStoreService) GenerateImageThumbnails(req *RequestGenerateThumbnails) *ApiResponse[ResponseGenerateThumbnails] {
	if req.Uid <= 0 {
		return NewApiResponse[ResponseGenerateThumbnails](&ErrNoPermission, Unsatisfied, nil)
	}
	thumbnails, res := store.GenerateThumbnails(req.Filename)
	if res != nil {
		return NewApiResponse[ResponseGenerateThumbnails](res, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessThumbnails, Unsatisfied, &ResponseGenerateThumbnails{Thumbnails: thumbnails})
}
