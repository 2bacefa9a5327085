// Package http_server
package http_server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/flybg-dev/flyingsites/internal/http_server/controller"
	"github.com/flybg-dev/flyingsites/internal/http_server/graphql"
	mid "github.com/flybg-dev/flyingsites/internal/http_server/middleware"
	impl "github.com/flybg-dev/flyingsites/internal/http_server/service"
	"github.com/flybg-dev/flyingsites/internal/http_server/service/store"
	. "github.com/flybg-dev/flyingsites/internal/interfaces"
	"github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	slogecho "github.com/samber/slog-echo"
)

type HttpServerShutdownCallback struct {
	serverHandler *echo.Echo
}

func NewHttpServerShutdownCallback(serverHandler *echo.Echo) *HttpServerShutdownCallback {
	return &HttpServerShutdownCallback{
		serverHandler: serverHandler,
	}
}

func (hc *HttpServerShutdownCallback) Invoke(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return hc.serverHandler.Shutdown(timeoutCtx)
}

func StartHttpServer(applicationContent *ApplicationContent) {
	config := applicationContent.ConfigManager().Config()
	logger := applicationContent.Logger()

	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	e.Logger.SetLevel(log.OFF)
	httpConfig := config.HttpServer

	switch httpConfig.ProxyType {
	case 0:
		e.IPExtractor = echo.ExtractIPDirect()
	case 1:
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	case 2:
		e.IPExtractor = echo.ExtractIPFromRealIPHeader()
	default:
		logger.WarnF("Invalid proxy type %d, using default (direct)", httpConfig.ProxyType)
		e.IPExtractor = echo.ExtractIPDirect()
	}

	if httpConfig.SSL.ForceSSL {
		e.Use(middleware.HTTPSRedirect())
	}

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: 30 * time.Second}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(ctx echo.Context, err error, stack []byte) error {
			logger.ErrorF("Recovered from a fatal error: %v, stack: %s", err, string(stack))
			return err
		},
	}))

	loggerConfig := slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}
	e.Use(slogecho.NewWithConfig(slog.Default(), loggerConfig))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            httpConfig.SSL.HstsExpiredTime,
		HSTSExcludeSubdomains: !httpConfig.SSL.IncludeDomain,
	}))
	e.Use(middleware.CORS())
	if httpConfig.BodyLimit != "" {
		e.Use(middleware.BodyLimit(httpConfig.BodyLimit))
	}
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(mid.CsrfHeaderMiddleware())

	if httpConfig.Limits.RateLimit <= 0 {
		logger.WarnF("Invalid rate limit value %d, using default 15", httpConfig.Limits.RateLimit)
		httpConfig.Limits.RateLimit = 15
	}

	if httpConfig.Limits.RateLimitDuration <= 0 {
		logger.WarnF("Invalid rate limit duration %v, using default 1m", httpConfig.Limits.RateLimitDuration)
		httpConfig.Limits.RateLimitDuration = time.Minute
	}

	ipPathLimiter := mid.NewSlidingWindowLimiter(
		httpConfig.Limits.RateLimitDuration,
		httpConfig.Limits.RateLimit,
	)
	cleanupInterval := httpConfig.Limits.RateLimitDuration * 2
	if cleanupInterval > time.Hour {
		cleanupInterval = time.Hour
		logger.InfoF("Limiting cleanup interval to 1 hour for efficiency")
	}
	ipPathLimiter.StartCleanup(cleanupInterval)

	e.Use(mid.RateLimitMiddleware(ipPathLimiter, mid.CombinedKeyFunc))

	jwtConfig := echojwt.Config{
		SigningKey:    []byte(httpConfig.JWT.Secret),
		TokenLookup:   "header:Authorization:Bearer ",
		SigningMethod: "HS512",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var data *service.ApiResponse[any]
			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				data = service.NewApiResponse[any](&service.ErrMissingOrMalformedJwt, service.Unsatisfied, nil)
			case errors.Is(err, echojwt.ErrJWTInvalid):
				data = service.NewApiResponse[any](&service.ErrInvalidOrExpiredJwt, service.Unsatisfied, nil)
			default:
				data = service.NewApiResponse[any](&service.ErrUnknown, service.Unsatisfied, nil)
			}
			return data.Response(c)
		},
	}

	siteOperation := applicationContent.Operations().SiteOperation()
	userOperation := applicationContent.Operations().UserOperation()

	jwtMiddleware := echojwt.WithConfig(jwtConfig)
	activeUserMiddleware := mid.ActiveUserMiddleware(userOperation)

	emailService := impl.NewEmailService(logger, httpConfig.Email)
	impl.InitValidator(httpConfig.Limits)

	localStore := store.NewLocalStoreService(logger, httpConfig.Store)
	var storeService service.StoreServiceInterface = localStore
	switch httpConfig.Store.StoreType {
	case 1:
		storeService = store.NewALiYunOssStoreService(logger, httpConfig.Store, localStore)
	case 2:
		storeService = store.NewTencentCosStoreService(logger, httpConfig.Store, localStore)
	}

	userService := impl.NewUserService(logger, emailService, httpConfig, userOperation)
	siteService := impl.NewSiteService(logger, httpConfig, siteOperation)

	schema, err := graphql.NewSchema(logger, siteService, userService)
	if err != nil {
		logger.FatalF("Fail to build graphql schema: %v", err)
		return
	}

	siteController := controller.NewSiteController(logger, siteService)
	userController := controller.NewUserController(logger, userService)
	fileController := controller.NewFileController(logger, storeService)
	graphqlController := controller.NewGraphqlController(logger, httpConfig.JWT, schema, userOperation)

	apiGroup := e.Group("/api")
	apiGroup.POST("/sessions", userController.UserLogin)
	apiGroup.GET("/profile", userController.GetCurrentUserProfile, jwtMiddleware, activeUserMiddleware)
	apiGroup.POST("/activations", userController.RequestActivation)
	apiGroup.PUT("/activations", userController.CompleteActivation)
	apiGroup.POST("/users", userController.CreateUserAccounts, jwtMiddleware, activeUserMiddleware)

	apiGroup.GET("/sites", siteController.ListSites)
	apiGroup.POST("/sites", siteController.CreateSite, jwtMiddleware, activeUserMiddleware)
	apiGroup.GET("/site/:id", siteController.GetSite)
	apiGroup.PUT("/site/:id", siteController.UpdateSite, jwtMiddleware, activeUserMiddleware)
	apiGroup.DELETE("/site/:id", siteController.DeleteSite, jwtMiddleware, activeUserMiddleware)
	apiGroup.POST("/sites/migrate-urls", siteController.MigrateSiteUrls, jwtMiddleware, activeUserMiddleware)

	imageGroup := apiGroup.Group("/image")
	imageGroup.POST("/upload", fileController.UploadImage, jwtMiddleware, activeUserMiddleware)
	imageGroup.DELETE("/:filename", fileController.DeleteImage, jwtMiddleware, activeUserMiddleware)
	imageGroup.POST("/generate-thumbnails/:filename", fileController.GenerateThumbnails, jwtMiddleware, activeUserMiddleware)

	apiGroup.POST("/graphql", graphqlController.Query)

	apiGroup.Use(middleware.Static(httpConfig.Store.LocalStorePath))

	applicationContent.Cleaner().Add(NewHttpServerShutdownCallback(e))

	protocol := "http"
	if httpConfig.SSL.Enable {
		protocol = "https"
	}
	logger.InfoF("Starting %s server on %s", protocol, httpConfig.Address)
	logger.InfoF("Rate limit: %d requests per %v",
		httpConfig.Limits.RateLimit,
		httpConfig.Limits.RateLimitDuration)

	if httpConfig.SSL.Enable {
		err = e.StartTLS(
			httpConfig.Address,
			httpConfig.SSL.CertFile,
			httpConfig.SSL.KeyFile,
		)
	} else {
		err = e.Start(httpConfig.Address)
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.FatalF("Http server error: %v", err)
	}
}
