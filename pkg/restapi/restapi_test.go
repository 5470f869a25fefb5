package restapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
)

func newContext(target string) echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
}

func TestParseQueueNameParam(t *testing.T) {
	c := newContext("/")
	c.SetParamNames(restapi.ParameterQueueName)

	c.SetParamValues("verified")
	queueName, err := restapi.ParseQueueNameParam(c)
	require.NoError(t, err)
	require.Equal(t, txpool.QueueVerified, queueName)

	c.SetParamValues("unknown")
	_, err = restapi.ParseQueueNameParam(c)
	require.ErrorIs(t, err, httpserver.ErrInvalidParameter)
}

func TestParseLimitQueryParam(t *testing.T) {
	limit, err := restapi.ParseLimitQueryParam(newContext("/"), 25)
	require.NoError(t, err)
	require.Equal(t, 25, limit)

	limit, err = restapi.ParseLimitQueryParam(newContext("/?limit=5"), 25)
	require.NoError(t, err)
	require.Equal(t, 5, limit)

	limit, err = restapi.ParseLimitQueryParam(newContext("/?limit=100"), 25)
	require.NoError(t, err)
	require.Equal(t, 25, limit)

	_, err = restapi.ParseLimitQueryParam(newContext("/?limit=-1"), 25)
	require.ErrorIs(t, err, httpserver.ErrInvalidParameter)
}

func TestRestRouteManager(t *testing.T) {
	manager := restapi.NewRestRouteManager(echo.New())
	manager.AddRoute("txpool/v1")
	manager.AddRoute("metrics/v1")
	manager.AddRoute("txpool/v1")

	require.Equal(t, []string{"metrics/v1", "txpool/v1"}, manager.Routes())
}

func TestRouteMatcher(t *testing.T) {
	public, err := restapi.NewRouteMatcher("/health", "/api/txpool/v1/queues*")
	require.NoError(t, err)

	require.True(t, public.Match("/health"))
	require.True(t, public.Match("/HEALTH"))
	require.False(t, public.Match("/healthy"))
	require.False(t, public.Match("/api/health"))
	require.True(t, public.Match("/api/txpool/v1/queues/ready"))
	require.False(t, public.Match("/api/txpool/v1/transactions/0x00"))

	protected, err := restapi.NewRouteMatcher("^/api/.*$")
	require.NoError(t, err)

	exposed := public.Join(protected)
	require.True(t, exposed.Match("/health"))
	require.True(t, exposed.Match("/api/txpool/v1/transactions/0x00"))
	require.False(t, exposed.Match("/metrics"))
	require.False(t, public.Match("/api/txpool/v1/transactions/0x00"))

	require.True(t, public.MatchRequest(newContext("/api/txpool/v1/queues?limit=5")))

	_, err = restapi.NewRouteMatcher("^(")
	require.Error(t, err)
}
