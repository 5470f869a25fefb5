package restapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/iota-txpool/pkg/daemon"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
)

func init() {
	Component = &app.Component{
		Name:      "RestAPI",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Params:    params,
		Provide:   provide,
		Configure: configure,
		Run:       run,
		IsEnabled: func(*dig.Container) bool {
			return ParamsRestAPI.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	Echo             *echo.Echo
	RestRouteManager *restapi.RestRouteManager
	TransactionPool  txpool.TransactionPool `optional:"true"`
}

func provide(c *dig.Container) error {
	if err := c.Provide(func() *echo.Echo {
		e := httpserver.NewEcho(Component.Logger, nil, ParamsRestAPI.DebugRequestLoggerEnabled)
		e.Use(middleware.CORS(), middleware.Gzip(), middleware.BodyLimit(ParamsRestAPI.Limits.MaxBodyLength))

		return e
	}); err != nil {
		return err
	}

	return c.Provide(restapi.NewRestRouteManager)
}

func configure() error {
	if ParamsRestAPI.JWTAuth.Salt == "" {
		Component.LogFatalf("'%s' must not be empty", Component.App().Config().GetParameterPath(&(ParamsRestAPI.JWTAuth.Salt)))
	}

	if ParamsRestAPI.JWTAuth.IdentitySeed == "" {
		Component.LogWarnf("'%s' is empty, issued JWT tokens become invalid on restart", Component.App().Config().GetParameterPath(&(ParamsRestAPI.JWTAuth.IdentitySeed)))
	}

	auth, err := newJWTAuth(ParamsRestAPI.JWTAuth.IdentitySeed, ParamsRestAPI.JWTAuth.Salt)
	if err != nil {
		Component.LogFatalf("JWT auth initialization failed: %s", err)
	}

	authMiddleware, err := apiMiddleware(auth, ParamsRestAPI.PublicRoutes, ParamsRestAPI.ProtectedRoutes)
	if err != nil {
		Component.LogFatal(err.Error())
	}

	deps.Echo.Use(authMiddleware)
	setupRoutes(deps.Echo, deps.RestRouteManager, deps.TransactionPool)

	return nil
}

func run() error {
	return Component.Daemon().BackgroundWorker("REST-API server", func(ctx context.Context) {
		Component.LogInfof("Starting REST-API server on %s ...", ParamsRestAPI.BindAddress)
		restapi.Serve(ctx, Component.Logger, deps.Echo, ParamsRestAPI.BindAddress, ParamsRestAPI.ShutdownTimeout)
		Component.LogInfo("Stopping REST-API server ... done")
	}, daemon.PriorityRestAPI)
}
