package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
	"github.com/iotaledger/iota.go/v4/api"
)

// RoutesResponse lists the route groups of the REST API.
type RoutesResponse struct {
	Routes []string `json:"routes"`
}

func setupRoutes(e *echo.Echo, routeManager *restapi.RestRouteManager, transactionPool txpool.TransactionPool) {
	// GET returns 200 while the transaction pool admits transactions and 503 otherwise.
	e.GET(api.RouteHealth, func(c echo.Context) error {
		if transactionPool == nil || transactionPool.IsShutdown() {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	})

	e.GET(api.RouteRoutes, func(c echo.Context) error {
		return httpserver.JSONResponse(c, http.StatusOK, &RoutesResponse{
			Routes: routeManager.Routes(),
		})
	})
}
