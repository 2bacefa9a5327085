// Package controller
package controller

import (
	"strings"

	gql "github.com/flybg-dev/flyingsites/internal/http_server/graphql"
	c "github.com/flybg-dev/flyingsites/internal/interfaces/config"
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	. "github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/golang-jwt/jwt/v5"
	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"
)

type GraphqlControllerInterface interface {
	Query(ctx echo.Context) error
}

type GraphqlController struct {
	logger        log.LoggerInterface
	config        *c.JWTConfig
	schema        graphql.Schema
	userOperation operation.UserOperationInterface
}

func NewGraphqlController(
	logger log.LoggerInterface,
	config *c.JWTConfig,
	schema graphql.Schema,
	userOperation operation.UserOperationInterface,
) *GraphqlController {
	return &GraphqlController{
		logger:        logger,
		config:        config,
		schema:        schema,
		userOperation: userOperation,
	}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// resolveIdentity turns an optional bearer token into the request identity.
// Anything invalid degrades to the public caller; protected resolvers fail
// on their own.
func (controller *GraphqlController) resolveIdentity(ctx echo.Context) *gql.Identity {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return &gql.Identity{}
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(controller.config.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil || !token.Valid {
		return &gql.Identity{}
	}
	user, err := controller.userOperation.GetUserByUid(claims.Uid)
	if err != nil || !user.IsActive {
		return &gql.Identity{}
	}
	return &gql.Identity{
		Authenticated: true,
		Uid:           user.ID,
		Email:         user.Email,
		Username:      user.Username,
		IsSuperAdmin:  user.IsSuperAdmin,
	}
}

func (controller *GraphqlController) Query(ctx echo.Context) error {
	data := &graphqlRequest{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("GraphqlController.Query bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	if data.Query == "" {
		return NewErrorResponse(ctx, &ErrLackParam)
	}

	result := graphql.Do(graphql.Params{
		Schema:         controller.schema,
		RequestString:  data.Query,
		OperationName:  data.OperationName,
		VariableValues: data.Variables,
		Context:        gql.WithIdentity(ctx.Request().Context(), controller.resolveIdentity(ctx)),
	})
	return ctx.JSON(Ok.Code(), result)
}
