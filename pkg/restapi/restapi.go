package restapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
)

const (
	// ParameterQueueName is used to identify a queue of the transaction pool.
	ParameterQueueName = "queueName"

	// QueryParameterLimit is used to limit the number of returned results.
	QueryParameterLimit = "limit"
)

func ParseQueueNameParam(c echo.Context) (txpool.QueueName, error) {
	queueName, err := txpool.ParseQueueName(c.Param(ParameterQueueName))
	if err != nil {
		return "", ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid queue name, error: %s", err)
	}

	return queueName, nil
}

// ParseLimitQueryParam parses the limit query parameter and caps it at maxLimit.
// A missing parameter yields maxLimit.
func ParseLimitQueryParam(c echo.Context, maxLimit int) (int, error) {
	limitString := c.QueryParam(QueryParameterLimit)
	if limitString == "" {
		return maxLimit, nil
	}

	limit, err := strconv.Atoi(limitString)
	if err != nil || limit < 0 {
		return 0, ierrors.Wrapf(httpserver.ErrInvalidParameter, "invalid limit: %s", limitString)
	}

	return min(limit, maxLimit), nil
}
