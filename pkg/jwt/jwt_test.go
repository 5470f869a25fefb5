package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/iota-txpool/pkg/jwt"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func newAuth(t *testing.T, salt string, sessionTimeout time.Duration) *jwt.Auth {
	seed := tpkg.Rand32ByteArray()
	auth, err := jwt.NewAuth(salt, sessionTimeout, "node", ed25519.PrivateKeyFromSeed(seed[:]))
	require.NoError(t, err)

	return auth
}

func TestAuth_IssueAndVerify(t *testing.T) {
	auth := newAuth(t, "IOTA", 0)

	token, err := auth.IssueJWT()
	require.NoError(t, err)

	claims, err := auth.VerifyJWT(token)
	require.NoError(t, err)
	require.True(t, claims.VerifySubject("node"))
	require.Zero(t, claims.ExpiresAt)

	_, err = newAuth(t, "IOTA", 0).VerifyJWT(token)
	require.Error(t, err)

	_, err = jwt.NewAuth("", 0, "node", ed25519.PrivateKeyFromSeed(make([]byte, ed25519.SeedSize)))
	require.Error(t, err)
}

func TestAuth_Middleware(t *testing.T) {
	auth := newAuth(t, "IOTA", time.Hour)
	token, err := auth.IssueJWT()
	require.NoError(t, err)

	handler := auth.Middleware(
		func(c echo.Context) bool { return c.Path() == "/public" },
		func(_ echo.Context, subject string, claims *jwt.AuthClaims) bool { return claims.VerifySubject(subject) },
	)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	serve := func(path string, authorization string) error {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath(path)

		return handler(c)
	}

	require.NoError(t, serve("/public", ""))
	require.NoError(t, serve("/protected", "Bearer "+token))
	require.ErrorIs(t, serve("/protected", ""), echo.ErrUnauthorized)
	require.Error(t, serve("/protected", "Bearer invalid"))
}

func TestIdentityFromSeed(t *testing.T) {
	seed, err := jwt.GenerateIdentitySeed()
	require.NoError(t, err)

	privateKey, err := jwt.IdentityFromSeed(seed)
	require.NoError(t, err)

	sameKey, err := jwt.IdentityFromSeed(seed)
	require.NoError(t, err)
	require.Equal(t, privateKey, sameKey)
	require.Equal(t, jwt.NodeID(privateKey), jwt.NodeID(sameKey))

	randomKey, err := jwt.IdentityFromSeed("")
	require.NoError(t, err)
	require.NotEqual(t, privateKey, randomKey)

	_, err = jwt.IdentityFromSeed("3mJr7AoUXx2Wqd")
	require.Error(t, err)

	_, err = jwt.IdentityFromSeed("0OIl")
	require.Error(t, err)
}
