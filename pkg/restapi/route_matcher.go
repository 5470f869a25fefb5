package restapi

import (
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
)

// RouteMatcher decides whether a request targets one of a list of configured routes.
//
// A route starting with "^" is used as a raw regular expression. Any other route has to match the whole path, with
// "*" matching any sequence of characters.
type RouteMatcher struct {
	regexes []*regexp.Regexp
}

// NewRouteMatcher compiles the given routes.
func NewRouteMatcher(routes ...string) (*RouteMatcher, error) {
	regexes := make([]*regexp.Regexp, 0, len(routes))
	for _, route := range routes {
		expression := route
		if !strings.HasPrefix(route, "^") {
			expression = "^" + strings.ReplaceAll(regexp.QuoteMeta(strings.ToLower(route)), `\*`, "(.*?)") + "$"
		}

		regex, err := regexp.Compile(expression)
		if err != nil {
			return nil, ierrors.Wrapf(err, "invalid route in config: %s", route)
		}
		regexes = append(regexes, regex)
	}

	return &RouteMatcher{regexes: regexes}, nil
}

// Join returns a RouteMatcher that matches the routes of both RouteMatchers.
func (m *RouteMatcher) Join(other *RouteMatcher) *RouteMatcher {
	regexes := make([]*regexp.Regexp, 0, len(m.regexes)+len(other.regexes))

	return &RouteMatcher{regexes: append(append(regexes, m.regexes...), other.regexes...)}
}

// Match returns true if the lowercased path matches one of the routes.
func (m *RouteMatcher) Match(path string) bool {
	loweredPath := strings.ToLower(path)
	for _, regex := range m.regexes {
		if regex.MatchString(loweredPath) {
			return true
		}
	}

	return false
}

// MatchRequest matches the path of the request, it can be used as an echo middleware skipper.
func (m *RouteMatcher) MatchRequest(c echo.Context) bool {
	return m.Match(c.Request().URL.Path)
}
