package restapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/log"
)

// Serve runs the echo server on the bind address until the context is done and shuts it down afterwards.
func Serve(ctx context.Context, logger log.Logger, e *echo.Echo, bindAddress string, shutdownTimeout time.Duration) {
	go func() {
		logger.LogInfo("listening", "address", bindAddress)

		if err := e.Start(bindAddress); err != nil && !ierrors.Is(err, http.ErrServerClosed) {
			logger.LogWarn("server stopped due to an error", "address", bindAddress, "err", err)
		}
	}()

	<-ctx.Done()

	//nolint:contextcheck // the parent context is done already
	shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCtxCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.LogWarn("failed to shut down server", "address", bindAddress, "err", err)
	}
}
