// Package controller
package controller

import (
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type UserControllerInterface interface {
	UserLogin(ctx echo.Context) error
	RequestActivation(ctx echo.Context) error
	CompleteActivation(ctx echo.Context) error
	CreateUserAccounts(ctx echo.Context) error
	GetCurrentUserProfile(ctx echo.Context) error
}

type UserController struct {
	logger  log.LoggerInterface
	service UserServiceInterface
}

func NewUserController(logger log.LoggerInterface, service UserServiceInterface) *UserController {
	return &UserController{
		logger:  logger,
		service: service,
	}
}

func (controller *UserController) UserLogin(ctx echo.Context) error {
	data := &RequestUserLogin{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("UserController.UserLogin bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.UserLogin(data).Response(ctx)
}

func (controller *UserController) RequestActivation(ctx echo.Context) error {
	data := &RequestActivation{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("UserController.RequestActivation bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.RequestActivation(data).Response(ctx)
}

func (controller *UserController) CompleteActivation(ctx echo.Context) error {
	data := &RequestCompleteActivation{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("UserController.CompleteActivation bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	return controller.service.CompleteActivation(data).Response(ctx)
}

func (controller *UserController) CreateUserAccounts(ctx echo.Context) error {
	data := &RequestCreateAccounts{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("UserController.CreateUserAccounts bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	claim := claimsOf(ctx)
	data.Uid = claim.Uid
	data.IsSuperAdmin = claim.IsSuperAdmin
	return controller.service.CreateUserAccounts(data).Response(ctx)
}

func (controller *UserController) GetCurrentUserProfile(ctx echo.Context) error {
	claim := claimsOf(ctx)
	data := &RequestUserProfile{Uid: claim.Uid}
	return controller.service.GetUserProfile(data).Response(ctx)
}
