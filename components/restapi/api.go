package restapi

import (
	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/iota-txpool/pkg/jwt"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
)

// newJWTAuth creates the token authority of the node from the configured identity seed and salt.
func newJWTAuth(identitySeed string, salt string) (*jwt.Auth, error) {
	privateKey, err := jwt.IdentityFromSeed(identitySeed)
	if err != nil {
		return nil, err
	}

	// API tokens do not expire.
	return jwt.NewAuth(salt, 0, jwt.NodeID(privateKey), privateKey)
}

// apiMiddleware serves public routes to everyone and protected routes to callers with a valid token. Requests to
// routes that are neither public nor protected are forbidden.
func apiMiddleware(auth *jwt.Auth, publicRoutes []string, protectedRoutes []string) (echo.MiddlewareFunc, error) {
	public, err := restapi.NewRouteMatcher(publicRoutes...)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to compile public routes")
	}

	protected, err := restapi.NewRouteMatcher(protectedRoutes...)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to compile protected routes")
	}

	exposed := public.Join(protected)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		authenticated := auth.Middleware(public.MatchRequest, func(c echo.Context, subject string, claims *jwt.AuthClaims) bool {
			return exposed.MatchRequest(c) && claims.VerifySubject(subject)
		})(next)

		return func(c echo.Context) error {
			if !exposed.MatchRequest(c) {
				return echo.ErrForbidden
			}

			return authenticated(c)
		}
	}, nil
}
