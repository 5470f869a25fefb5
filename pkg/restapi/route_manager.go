package restapi

import (
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/runtime/syncutils"
)

// RestRouteManager keeps track of the route groups that components register on the REST API.
type RestRouteManager struct {
	routes    map[string]struct{}
	echo      *echo.Echo
	routesMtx syncutils.RWMutex
}

func NewRestRouteManager(e *echo.Echo) *RestRouteManager {
	return &RestRouteManager{
		routes: make(map[string]struct{}),
		echo:   e,
	}
}

// AddRoute adds a route group under the "/api" prefix.
func (p *RestRouteManager) AddRoute(route string) *echo.Group {
	p.routesMtx.Lock()
	defer p.routesMtx.Unlock()

	p.routes[route] = struct{}{}

	return p.echo.Group("/api/" + route)
}

// Routes returns the sorted list of registered route groups.
func (p *RestRouteManager) Routes() []string {
	p.routesMtx.RLock()
	defer p.routesMtx.RUnlock()

	routes := make([]string, 0, len(p.routes))
	for route := range p.routes {
		routes = append(routes, route)
	}
	sort.Strings(routes)

	return routes
}
