package service

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
	"time"

	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
)

var (
	ErrFilePathFail       = ApiStatus{"FILE_PATH_FAIL", "file upload failed", ServerInternalError}
	ErrFileSaveFail       = ApiStatus{"FILE_SAVE_FAIL", "file save failed", ServerInternalError}
	ErrFileUploadFail     = ApiStatus{"FILE_UPLOAD_FAIL", "file upload failed", ServerInternalError}
	ErrFileOverSize       = ApiStatus{"FILE_OVER_SIZE", "file too large", BadRequest}
	ErrFileExtUnsupported = ApiStatus{"FILE_EXT_UNSUPPORTED", "unsupported file type", BadRequest}
	ErrFileNameIllegal    = ApiStatus{"FILE_NAME_ILLEGAL", "illegal file name", BadRequest}
	ErrFileNotFound       = ApiStatus{"FILE_NOT_FOUND", "file does not exist", NotFound}
	SuccessUploadFile     = ApiStatus{"UPLOAD_FILE", "file uploaded", Ok}
	SuccessDeleteFile     = ApiStatus{"DELETE_FILE", "file deleted", Ok}
	SuccessThumbnails     = ApiStatus{"GENERATE_THUMBNAILS", "thumbnails generated", Ok}
)

// StoreInfo carries everything a storage backend needs to persist one upload.
type StoreInfo struct {
	FileLimit   *c.HttpServerStoreFileLimit
	RootPath    string
	FilePath    string
	RemotePath  string
	FileName    string
	FileExt     string
	FileContent *multipart.FileHeader
	Width       int
	Height      int
}

// GenerateStoreInfo validates an uploaded image against the store limits
// and derives a collision-free storage name.
func GenerateStoreInfo(store *c.HttpServerStore, file *multipart.FileHeader) (*StoreInfo, *ApiStatus) {
	if strings.Contains(file.Filename, string(filepath.Separator)) {
		return nil, &ErrFileNameIllegal
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(store.ImageLimit.AllowedFileExt, ext) {
		return nil, &ErrFileExtUnsupported
	}
	if file.Size > store.ImageLimit.MaxFileSize {
		return nil, &ErrFileOverSize
	}

	storeInfo := &StoreInfo{
		FileLimit:   store.ImageLimit,
		RootPath:    store.LocalStorePath,
		FileExt:     ext,
		FileContent: file,
	}
	storeInfo.FileName = filepath.Join(store.ImageLimit.StorePrefix, fmt.Sprintf("%d%s", time.Now().UnixNano(), ext))
	storeInfo.FilePath = filepath.Join(store.LocalStorePath, storeInfo.FileName)
	storeInfo.RemotePath = strings.Replace(storeInfo.FileName, "\\", "/", -1)
	return storeInfo, nil
}

// StoreServiceInterface is the storage backend chain. Remote backends wrap
// the local one and forward the stored file to OSS or COS.
type StoreServiceInterface interface {
	SaveImageFile(file *multipart.FileHeader) (*StoreInfo, *ApiStatus)
	DeleteImageFile(filename string) *ApiStatus
	GenerateThumbnails(filename string) ([]string, *ApiStatus)
	SaveUploadImage(req *RequestUploadImage) *ApiResponse[ResponseUploadImage]
	DeleteUploadImage(req *RequestDeleteImage) *ApiResponse[any]
	GenerateImageThumbnails(req *RequestGenerateThumbnails) *ApiResponse[ResponseGenerateThumbnails]
}

type RequestUploadImage struct {
	Uid          uint
	IsSuperAdmin bool
	Author       string
	File         *multipart.FileHeader
}

type ResponseUploadImage struct {
	FileSize   int64  `json:"fileSize"`
	AccessPath string `json:"accessPath"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

type RequestDeleteImage struct {
	Uid          uint
	IsSuperAdmin bool
	Filename     string `param:"filename"`
}

type RequestGenerateThumbnails struct {
	Uid          uint
	IsSuperAdmin bool
	Filename     string `param:"filename"`
}

type ResponseGenerateThumbnails struct {
	Thumbnails []string `json:"thumbnails"`
}
