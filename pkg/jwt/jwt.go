package jwt

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/blake2b"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
)

var (
	// ErrJWTInvalidClaims is returned when the claims of a token are not valid for this node.
	ErrJWTInvalidClaims = echo.NewHTTPError(http.StatusUnauthorized, "invalid jwt claims")
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer"
)

// AuthClaims are the claims carried by the tokens of the REST API.
type AuthClaims struct {
	jwt.StandardClaims
	Dashboard bool `json:"dashboard,omitempty"`
}

// VerifySubject checks that the token was issued for the given subject.
func (c *AuthClaims) VerifySubject(expected string) bool {
	return c.Subject == expected
}

// Auth issues and verifies the tokens of the REST API.
type Auth struct {
	subject        string
	sessionTimeout time.Duration
	nodeID         string
	secret         []byte
}

// NewAuth creates an Auth whose signing secret is derived from the node identity and the salt.
func NewAuth(salt string, sessionTimeout time.Duration, nodeID string, privateKey ed25519.PrivateKey) (*Auth, error) {
	if len(salt) == 0 {
		return nil, ierrors.New("salt must not be empty")
	}

	if privateKey == (ed25519.PrivateKey{}) {
		return nil, ierrors.New("private key must not be empty")
	}

	secret := blake2b.Sum256(append(append([]byte{}, privateKey[:]...), salt...))

	return &Auth{
		subject:        nodeID,
		sessionTimeout: sessionTimeout,
		nodeID:         nodeID,
		secret:         secret[:],
	}, nil
}

// IssueJWT creates a new signed token. Tokens without a session timeout never expire.
func (j *Auth) IssueJWT() (string, error) {
	now := time.Now()

	stdClaims := jwt.StandardClaims{
		Subject:   j.subject,
		Issuer:    j.nodeID,
		Audience:  j.nodeID,
		Id:        lo.PanicOnErr(uuid.NewUUID()).String(),
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
	}

	if j.sessionTimeout > 0 {
		stdClaims.ExpiresAt = now.Add(j.sessionTimeout).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &AuthClaims{StandardClaims: stdClaims})

	return token.SignedString(j.secret)
}

// VerifyJWT parses the token and returns its claims if it was signed by this node.
func (j *Auth) VerifyJWT(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierrors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return j.secret, nil
	})
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to parse jwt")
	}

	if !token.Valid {
		return nil, ierrors.New("invalid jwt")
	}

	if !claims.VerifyIssuer(j.nodeID, true) || !claims.VerifyAudience(j.nodeID, true) {
		return nil, ErrJWTInvalidClaims
	}

	return claims, nil
}

// Middleware returns an echo middleware that only lets requests with a valid token pass,
// unless the skipper decides otherwise.
func (j *Auth) Middleware(skipper middleware.Skipper, allow func(c echo.Context, subject string, claims *AuthClaims) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			tokenString, found := strings.CutPrefix(c.Request().Header.Get(authorizationHeader), bearerScheme+" ")
			if !found || len(tokenString) == 0 {
				return echo.ErrUnauthorized
			}

			claims, err := j.VerifyJWT(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			if !allow(c, j.subject, claims) {
				return ErrJWTInvalidClaims
			}

			return next(c)
		}
	}
}
