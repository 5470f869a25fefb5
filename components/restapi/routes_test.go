package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	txpoolv1 "github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/v1"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
)

func serve(e *echo.Echo, target string, token string) int {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec.Code
}

func TestHealthFollowsTransactionPool(t *testing.T) {
	transactionPool := txpoolv1.New(log.NewLogger())

	e := httpserver.NewEcho(log.NewLogger(), nil, false)
	routeManager := restapi.NewRestRouteManager(e)
	setupRoutes(e, routeManager, transactionPool)

	require.Equal(t, http.StatusOK, serve(e, "/health", ""))

	transactionPool.Shutdown()
	require.Equal(t, http.StatusServiceUnavailable, serve(e, "/health", ""))

	transactionPool.Start()
	defer transactionPool.Shutdown()
	require.Equal(t, http.StatusOK, serve(e, "/health", ""))
}

func TestAPIMiddleware(t *testing.T) {
	auth, err := newJWTAuth("", "TXPOOL")
	require.NoError(t, err)

	token, err := auth.IssueJWT()
	require.NoError(t, err)

	authMiddleware, err := apiMiddleware(auth, []string{"/health", "/api/txpool/v1/metrics"}, []string{"/api/*"})
	require.NoError(t, err)

	e := httpserver.NewEcho(log.NewLogger(), nil, false)
	e.Use(authMiddleware)

	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/health", ok)
	e.GET("/api/txpool/v1/metrics", ok)
	e.GET("/api/txpool/v1/transactions/:transactionId", ok)
	e.GET("/debug", ok)

	require.Equal(t, http.StatusOK, serve(e, "/health", ""))
	require.Equal(t, http.StatusOK, serve(e, "/api/txpool/v1/metrics", ""))
	require.Equal(t, http.StatusUnauthorized, serve(e, "/api/txpool/v1/transactions/0x00", ""))
	require.Equal(t, http.StatusOK, serve(e, "/api/txpool/v1/transactions/0x00", token))
	require.Equal(t, http.StatusForbidden, serve(e, "/debug", token))

	_, err = apiMiddleware(auth, []string{"^("}, nil)
	require.Error(t, err)
}

func TestDefaultPublicRoutesExist(t *testing.T) {
	public, err := restapi.NewRouteMatcher(ParamsRestAPI.PublicRoutes...)
	require.NoError(t, err)

	for _, route := range []string{"/health", "/api/routes", "/api/txpool/v1/queues/ready", "/api/txpool/v1/processable", "/api/txpool/v1/metrics"} {
		require.True(t, public.Match(route), route)
	}
	require.False(t, public.Match("/api/txpool/v1/transactions/0x00"))
}
