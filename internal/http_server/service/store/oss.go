// Package store
package store

import (
	"context"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
)

// ALiYunOssStoreService stores locally first, then mirrors the file to OSS.
type ALiYunOssStoreService struct {
	logger     log.LoggerInterface
	localStore *LocalStoreService
	config     *config.HttpServerStore
	endpoint   *url.URL
	client     *oss.Client
}

func NewALiYunOssStoreService(
	logger log.LoggerInterface,
	config *config.HttpServerStore,
	localStore *LocalStoreService,
) *ALiYunOssStoreService {
	service := &ALiYunOssStoreService{logger: logger, localStore: localStore, config: config}
	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.AccessId, config.AccessKey)).
		WithRegion(config.Region).
		WithUseInternalEndpoint(config.UseInternalUrl)
	service.client = oss.NewClient(cfg)
	if config.CdnDomain != "" {
		service.endpoint, _ = url.Parse(config.CdnDomain)
	} else {
		service.endpoint, _ = url.Parse(strings.Replace(*cfg.Endpoint, "-internal", "", 1))
	}
	return service
}

func (store *ALiYunOssStoreService) remotePath(name string) string {
	return strings.Replace(filepath.Join(store.config.RemoteStorePath, name), "\\", "/", -1)
}

func (store *ALiYunOssStoreService) putObject(key string, localPath string) error {
	putRequest := &oss.PutObjectRequest{
		Bucket:       oss.Ptr(store.config.Bucket),
		Key:          oss.Ptr(key),
		StorageClass: oss.StorageClassStandard,
	}
	_, err := store.client.PutObjectFromFile(context.TODO(), putRequest, localPath)
	return err
}

func (store *ALiYunOssStoreService) SaveImageFile(file *multipart.FileHeader) (*StoreInfo, *ApiStatus) {
	storeInfo, res := store.localStore.SaveImageFile(file)
	if res != nil {
		return nil, res
	}

	storeInfo.RemotePath = store.remotePath(storeInfo.FileName)
	if err := store.putObject(storeInfo.RemotePath, storeInfo.FilePath); err != nil {
		store.logger.ErrorF("ALiYunOssStoreService.SaveImageFile upload image to remote storage error: %v", err)
		return nil, &ErrFileUploadFail
	}
	return storeInfo, nil
}

func (store *ALiYunOssStoreService) DeleteImageFile(filename string) *ApiStatus {
	_, name := store.localStore.resolveStoredPath(filename)
	if res := store.localStore.DeleteImageFile(filename); res != nil {
		return res
	}
	delRequest := &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(store.config.Bucket),
		Key:    oss.Ptr(store.remotePath(name)),
	}
	if _, err := store.client.DeleteObject(context.TODO(), delRequest); err != nil {
		store.logger.ErrorF("ALiYunOssStoreService.DeleteImageFile delete image from remote storage error: %v", err)
		return &ErrFileUploadFail
	}
	return nil
}

func (store *ALiYunOssStoreService) GenerateThumbnails(filename string) ([]string, *ApiStatus) {
	thumbnails, res := store.localStore.GenerateThumbnails(filename)
	if res != nil {
		return nil, res
	}
	for _, thumbnail := range thumbnails {
		localPath := filepath.Join(store.config.LocalStorePath, filepath.FromSlash(thumbnail))
		if err := store.putObject(store.remotePath(thumbnail), localPath); err != nil {
			store.logger.ErrorF("ALiYunOssStoreService.GenerateThumbnails upload thumbnail error: %v", err)
			return nil, &ErrFileUploadFail
		}
	}
	return thumbnails, nil
}

func (store *ALiYunOssStoreService) SaveUploadImage(req *RequestUploadImage) *ApiResponse[ResponseUploadImage] {
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

func (store *ALiYunOssStoreService) DeleteUploadImage(req *RequestDeleteImage) *ApiResponse[any] {
	if req.Uid <= 0 {
		return NewApiResponse[any](&ErrNoPermission, Unsatisfied, nil)
	}
	if res := store.DeleteImageFile(req.Filename); res != nil {
		return NewApiResponse[any](res, Unsatisfied, nil)
	}
	return NewApiResponse[any](&SuccessDeleteFile, Unsatisfied, nil)
}

func (store *ALiYunOssStoreService) GenerateImageThumbnails(req *RequestGenerateThumbnails) *ApiResponse[ResponseGenerateThumbnails] {
	if req.Uid <= 0 {
		return NewApiResponse[ResponseGenerateThumbnails](&ErrNoPermission, Unsatisfied, nil)
	}
	thumbnails, res := store.GenerateThumbnails(req.Filename)
	if res != nil {
		return NewApiResponse[ResponseGenerateThumbnails](res, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessThumbnails, Unsatisfied, &ResponseGenerateThumbnails{Thumbnails: thumbnails})
}
