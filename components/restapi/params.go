package restapi

import (
	"time"

	"github.com/iotaledger/hive.go/app"
)

// ParametersRestAPI contains the definition of the parameters used by the REST API.
type ParametersRestAPI struct {
	// Enabled defines whether the REST API is served.
	Enabled bool `default:"true" usage:"whether the REST API is served"`
	// BindAddress defines the address the REST API listens on.
	BindAddress string `default:"0.0.0.0:8080" usage:"the bind address of the REST API"`
	// PublicRoutes lists the routes that can be called without a token.
	PublicRoutes []string `usage:"the routes that can be called without a JWT token; * matches any sequence of characters"`
	// ProtectedRoutes lists the routes that need a token.
	ProtectedRoutes []string `usage:"the routes that need a JWT token; * matches any sequence of characters"`
	// DebugRequestLoggerEnabled enables the logging of every request.
	DebugRequestLoggerEnabled bool `default:"false" usage:"whether every request is logged"`
	// ShutdownTimeout bounds the time pending requests get when the node shuts down.
	ShutdownTimeout time.Duration `default:"5s" usage:"how long pending requests may take when the REST API is stopped"`

	JWTAuth struct {
		// Salt is mixed into the secret of the tokens. Changing it invalidates all issued tokens.
		Salt string `default:"TXPOOL" usage:"the salt of the JWT secret; changing it invalidates issued tokens"`
		// IdentitySeed is the base58 encoded seed of the key that signs the tokens.
		IdentitySeed string `default:"" usage:"the base58 encoded 256-bit seed of the key that signs the JWT tokens; a random key is used if empty"`
	} `name:"jwtAuth"`

	Limits struct {
		// MaxBodyLength limits the size of request bodies.
		MaxBodyLength string `default:"1M" usage:"the maximum size of a request body"`
	}
}

// ParamsRestAPI contains the configuration of the REST API.
var ParamsRestAPI = &ParametersRestAPI{
	PublicRoutes: []string{
		"/health",
		"/api/routes",
		"/api/txpool/v1/queues*",
		"/api/txpool/v1/processable*",
		"/api/txpool/v1/metrics",
	},
	ProtectedRoutes: []string{
		"/api/*",
	},
}

var params = &app.ComponentParams{
	Params: map[string]any{
		"restAPI": ParamsRestAPI,
	},
	Masked: []string{"restAPI.jwtAuth.salt", "restAPI.jwtAuth.identitySeed"},
}
