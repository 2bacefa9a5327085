// Package service
package service

import (
	"errors"
	"time"

	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type HttpCode int

const (
	Unsatisfied         HttpCode = 0
	Ok                  HttpCode = 200
	MovedPermanently    HttpCode = 301
	BadRequest          HttpCode = 400
	Unauthorized        HttpCode = 401
	PermissionDenied    HttpCode = 403
	NotFound            HttpCode = 404
	Conflict            HttpCode = 409
	ServerInternalError HttpCode = 500
)

func (hc HttpCode) Code() int {
	return int(hc)
}

type ApiStatus struct {
	StatusName  string
	Description string
	HttpCode    HttpCode
}

type ApiResponse[T any] struct {
	HttpCode int    `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Data     *T     `json:"data"`
}

// Claims is the session token payload: enough identity to render the UI,
// while IsActive is still re-checked against the database on every request.
type Claims struct {
	Uid          uint   `json:"uid"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	IsActive     bool   `json:"isActive"`
	IsSuperAdmin bool   `json:"isSuperAdmin"`
	config       *c.JWTConfig
	jwt.RegisteredClaims
}

func NewClaims(config *c.JWTConfig, user *operation.User) *Claims {
	return &Claims{
		Uid:          user.ID,
		Email:        user.Email,
		Username:     user.Username,
		IsActive:     user.IsActive,
		IsSuperAdmin: user.IsSuperAdmin,
		config:       config,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    global.SessionIssuer,
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.ExpiresDuration)),
		},
	}
}

func (claim *Claims) GenerateKey() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claim)
	tokenString, _ := token.SignedString([]byte(claim.config.Secret))
	return tokenString
}

func (res *ApiResponse[T]) Response(ctx echo.Context) error {
	return ctx.JSON(res.HttpCode, res)
}

var (
	ErrIllegalParam          = ApiStatus{"PARAM_ERROR", "invalid parameters", BadRequest}
	ErrLackParam             = ApiStatus{"PARAM_LACK_ERROR", "missing parameters", BadRequest}
	ErrNoPermission          = ApiStatus{"NO_PERMISSION", "you are not allowed to do this", PermissionDenied}
	ErrDatabaseFail          = ApiStatus{"DATABASE_ERROR", "internal server error", ServerInternalError}
	ErrSiteNotFound          = ApiStatus{"SITE_NOT_FOUND", "flying site does not exist", NotFound}
	ErrUserNotFound          = ApiStatus{"USER_NOT_FOUND", "user does not exist", NotFound}
	ErrSlugConflict          = ApiStatus{"URL_SLUG_CONFLICT", "another site already holds this url, retry with a different title", Conflict}
	ErrCsrfHeader            = ApiStatus{"CSRF_HEADER_MISSING", "missing X-Requested-With header", PermissionDenied}
	ErrMissingOrMalformedJwt = ApiStatus{"MISSING_OR_MALFORMED_JWT", "missing or malformed session token", BadRequest}
	ErrInvalidOrExpiredJwt   = ApiStatus{"INVALID_OR_EXPIRED_JWT", "invalid or expired session token", Unauthorized}
	ErrUnknown               = ApiStatus{"UNKNOWN_JWT_ERROR", "unknown session token parse error", ServerInternalError}
)

func NewErrorResponse(ctx echo.Context, codeStatus *ApiStatus) error {
	return NewApiResponse[any](codeStatus, Unsatisfied, nil).Response(ctx)
}

func NewApiResponse[T any](codeStatus *ApiStatus, httpCode HttpCode, data *T) *ApiResponse[T] {
	if httpCode == Unsatisfied {
		httpCode = codeStatus.HttpCode
	}
	if httpCode == Unsatisfied {
		httpCode = Ok
	}
	return &ApiResponse[T]{
		HttpCode: httpCode.Code(),
		Code:     codeStatus.StatusName,
		Message:  codeStatus.Description,
		Data:     data,
	}
}

// ValidationStatus folds every violated field into the response message.
func ValidationStatus(verr *operation.ValidationError) *ApiStatus {
	return &ApiStatus{
		StatusName:  "VALIDATION_ERROR",
		Description: verr.Error(),
		HttpCode:    BadRequest,
	}
}

// CallDBFuncAndCheckError runs a gateway call and maps its errors onto api statuses.
func CallDBFuncAndCheckError[R any, T any](fc func() (*R, error)) (*R, *ApiResponse[T]) {
	result, err := fc()
	var verr *operation.ValidationError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &verr):
		return nil, NewApiResponse[T](ValidationStatus(verr), Unsatisfied, nil)
	case errors.Is(err, operation.ErrSlugTaken):
		return nil, NewApiResponse[T](&ErrSlugConflict, Unsatisfied, nil)
	case errors.Is(err, operation.ErrSiteNotFound):
		return nil, NewApiResponse[T](&ErrSiteNotFound, Unsatisfied, nil)
	case errors.Is(err, operation.ErrUserNotFound):
		return nil, NewApiResponse[T](&ErrUserNotFound, Unsatisfied, nil)
	default:
		return nil, NewApiResponse[T](&ErrDatabaseFail, Unsatisfied, nil)
	}
}
