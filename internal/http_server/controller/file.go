// Package controller
package controller

import (
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type FileControllerInterface interface {
	UploadImage(ctx echo.Context) error
	DeleteImage(ctx echo.Context) error
	GenerateThumbnails(ctx echo.Context) error
}

type FileController struct {
	logger       log.LoggerInterface
	storeService StoreServiceInterface
}

func NewFileController(logger log.LoggerInterface, storeService StoreServiceInterface) *FileController {
	return &FileController{
		logger:       logger,
		storeService: storeService,
	}
}

func (controller *FileController) UploadImage(ctx echo.Context) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		controller.logger.ErrorF("FileController.UploadImage form file error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	claim := claimsOf(ctx)
	data := &RequestUploadImage{
		Uid:          claim.Uid,
		IsSuperAdmin: claim.IsSuperAdmin,
		Author:       ctx.FormValue("author"),
		File:         file,
	}
	return controller.storeService.SaveUploadImage(data).Response(ctx)
}

func (controller *FileController) DeleteImage(ctx echo.Context) error {
	claim := claimsOf(ctx)
	data := &RequestDeleteImage{
		Uid:          claim.Uid,
		IsSuperAdmin: claim.IsSuperAdmin,
		Filename:     ctx.Param("filename"),
	}
	return controller.storeService.DeleteUploadImage(data).Response(ctx)
}

func (controller *FileController) GenerateThumbnails(ctx echo.Context) error {
	claim := claimsOf(ctx)
	data := &RequestGenerateThumbnails{
		Uid:          claim.Uid,
		IsSuperAdmin: claim.IsSuperAdmin,
		Filename:     ctx.Param("filename"),
	}
	return controller.storeService.GenerateImageThumbnails(data).Response(ctx)
}
