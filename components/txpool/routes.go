package txpool

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
	"github.com/iotaledger/iota.go/v4/api"
)

const (
	// RouteQueues is the route for getting the sizes of all queues.
	// GET returns the number of transactions per queue.
	RouteQueues = "/queues"

	// RouteQueue is the route for getting the content of a queue.
	// GET returns the ids of the transactions of the queue.
	RouteQueue = "/queues/:" + restapi.ParameterQueueName

	// RouteTransaction is the route for a single transaction.
	// GET returns the queue that tracks the transaction and its recent fate.
	// DELETE evicts the transaction from the pool.
	RouteTransaction = "/transactions/:" + api.ParameterTransactionID

	// RouteProcessable is the route for getting the transactions that are ready to be processed.
	// GET returns up to "limit" transactions of the ready queue.
	RouteProcessable = "/processable"

	// RouteMetrics is the route for getting the counters of the transaction pool.
	// GET returns the number of transactions per pipeline outcome since the start of the node.
	RouteMetrics = "/metrics"
)

func setupRoutes(routeGroup *echo.Group) {
	routeGroup.GET(RouteQueues, func(c echo.Context) error {
		return httpserver.JSONResponse(c, http.StatusOK, queueSizes())
	})

	routeGroup.GET(RouteQueue, func(c echo.Context) error {
		resp, err := queueByName(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteTransaction, func(c echo.Context) error {
		resp, err := transactionByID(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.DELETE(RouteTransaction, func(c echo.Context) error {
		if err := evictTransaction(c); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	})

	routeGroup.GET(RouteProcessable, func(c echo.Context) error {
		resp, err := processableTransactions(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})

	routeGroup.GET(RouteMetrics, func(c echo.Context) error {
		return httpserver.JSONResponse(c, http.StatusOK, poolMetrics())
	})
}
