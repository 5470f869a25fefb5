package txpool

import (
	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
	"github.com/iotaledger/iota.go/v4/api"
)

func queueSizes() *QueueSizesResponse {
	return &QueueSizesResponse{
		Sizes: deps.TransactionPool.QueueSizes(),
	}
}

func queueByName(c echo.Context) (*QueueResponse, error) {
	queueName, err := restapi.ParseQueueNameParam(c)
	if err != nil {
		return nil, err
	}

	transactions, err := deps.TransactionPool.Transactions(queueName)
	if err != nil {
		return nil, ierrors.Wrapf(echo.ErrNotFound, "failed to get queue %s: %s", queueName, err)
	}

	return &QueueResponse{
		Name: queueName,
		Size: len(transactions),
		TransactionIDs: lo.Map(transactions, func(transaction *txpool.Transaction) string {
			return transaction.ID.ToHex()
		}),
	}, nil
}

func transactionByID(c echo.Context) (*TransactionResponse, error) {
	txID, err := httpserver.ParseTransactionIDParam(c, api.ParameterTransactionID)
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to parse transaction ID %s", c.Param(api.ParameterTransactionID))
	}

	if transaction, queueName, exists := deps.TransactionPool.Transaction(txID); exists {
		return newTransactionResponse(transaction, queueName), nil
	}

	resp := &TransactionResponse{
		TransactionID: txID.ToHex(),
		Confirmed:     deps.TransactionPool.IsConfirmed(txID),
	}
	resp.RejectionReason, _ = deps.TransactionPool.RejectionReason(txID)

	if !resp.Confirmed && resp.RejectionReason == "" {
		return nil, ierrors.Wrapf(echo.ErrNotFound, "%s: %s", txpool.ErrTransactionNotFound, txID.ToHex())
	}

	return resp, nil
}

func evictTransaction(c echo.Context) error {
	txID, err := httpserver.ParseTransactionIDParam(c, api.ParameterTransactionID)
	if err != nil {
		return ierrors.Wrapf(err, "failed to parse transaction ID %s", c.Param(api.ParameterTransactionID))
	}

	if removed := deps.TransactionPool.RemoveTransactions(txID); len(removed) == 0 {
		return ierrors.Wrapf(echo.ErrNotFound, "%s: %s", txpool.ErrTransactionNotFound, txID.ToHex())
	}

	return nil
}

func processableTransactions(c echo.Context) (*TransactionsResponse, error) {
	limit, err := restapi.ParseLimitQueryParam(c, ParamsTxPool.Limits.MaxReadyTransactions)
	if err != nil {
		return nil, err
	}

	return &TransactionsResponse{
		Transactions: lo.Map(deps.TransactionPool.ProcessableTransactions(limit), func(transaction *txpool.Transaction) *TransactionResponse {
			return newTransactionResponse(transaction, txpool.QueueReady)
		}),
	}, nil
}

func poolMetrics() *PoolMetricsResponse {
	return &PoolMetricsResponse{
		Admitted:  deps.PoolMetrics.Admitted.Load(),
		Rejected:  deps.PoolMetrics.Rejected.Load(),
		Confirmed: deps.PoolMetrics.Confirmed.Load(),
		Demoted:   deps.PoolMetrics.Demoted.Load(),
		Restored:  deps.PoolMetrics.Restored.Load(),
		Expired:   deps.PoolMetrics.Expired.Load(),
		Evicted:   deps.PoolMetrics.Evicted.Load(),
	}
}
