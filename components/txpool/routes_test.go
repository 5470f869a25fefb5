package txpool

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/iota-txpool/pkg/metrics"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	txpoolv1 "github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/v1"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func setupTestRoutes(t *testing.T) (*echo.Echo, txpool.TransactionPool) {
	transactionPool := txpoolv1.New(log.NewLogger(),
		txpoolv1.WithJobIntervals(time.Millisecond, time.Millisecond, time.Millisecond, time.Hour),
	)
	t.Cleanup(transactionPool.Shutdown)

	deps.TransactionPool = transactionPool
	deps.PoolMetrics = metrics.NewPoolMetrics(transactionPool.Events())
	ParamsTxPool.Limits.MaxReadyTransactions = txpoolv1.DefaultMaxReadyTransactions

	e := httpserver.NewEcho(log.NewLogger(), nil, false)
	setupRoutes(e.Group("/api/txpool/v1"))

	return e, transactionPool
}

func newTransaction() *txpool.Transaction {
	recipientID := tpkg.RandAccountID()

	return &txpool.Transaction{
		ID:              tpkg.RandTransactionID(),
		SenderPublicKey: ed25519.PublicKey(tpkg.Rand32ByteArray()),
		RecipientID:     &recipientID,
		Type:            txpool.TransactionTypeTransfer,
	}
}

func request(t *testing.T, e *echo.Echo, method string, target string, resp any) int {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	if resp != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), resp))
	}

	return rec.Code
}

func TestRoutes_Queues(t *testing.T) {
	e, transactionPool := setupTestRoutes(t)

	transactions := []*txpool.Transaction{newTransaction(), newTransaction()}
	_, err := transactionPool.AddTransactions(transactions)
	require.NoError(t, err)

	sizes := &QueueSizesResponse{}
	require.Equal(t, http.StatusOK, request(t, e, http.MethodGet, "/api/txpool/v1/queues", sizes))
	require.Equal(t, 2, sizes.Sizes[txpool.QueueReceived])
	require.Equal(t, 0, sizes.Sizes[txpool.QueueReady])

	received := &QueueResponse{}
	require.Equal(t, http.StatusOK, request(t, e, http.MethodGet, "/api/txpool/v1/queues/received", received))
	require.Equal(t, txpool.QueueReceived, received.Name)
	require.Equal(t, []string{transactions[0].ID.ToHex(), transactions[1].ID.ToHex()}, received.TransactionIDs)

	require.Equal(t, http.StatusBadRequest, request(t, e, http.MethodGet, "/api/txpool/v1/queues/unknown", nil))

	_, err = transactionPool.AddTransactions(transactions[:1])
	require.ErrorIs(t, err, txpool.ErrTransactionExists)

	counters := &PoolMetricsResponse{}
	require.Equal(t, http.StatusOK, request(t, e, http.MethodGet, "/api/txpool/v1/metrics", counters))
	require.EqualValues(t, 2, counters.Admitted)
	require.EqualValues(t, 1, counters.Rejected)
}

func TestRoutes_Transaction(t *testing.T) {
	e, transactionPool := setupTestRoutes(t)

	tracked := newTransaction()
	confirmed := newTransaction()
	require.NoError(t, transactionPool.AddTransaction(tracked))
	require.NoError(t, transactionPool.OnNewBlock(txpool.NewBlock(confirmed)))

	resp := &TransactionResponse{}
	require.Equal(t, http.StatusOK, request(t, e, http.MethodGet, "/api/txpool/v1/transactions/"+tracked.ID.ToHex(), resp))
	require.Equal(t, txpool.QueueReceived, resp.Queue)
	require.Equal(t, "transfer", resp.Type)
	require.Equal(t, tracked.RecipientID.ToHex(), resp.RecipientID)

	resp = &TransactionResponse{}
	require.Equal(t, http.StatusOK, request(t, e, http.MethodGet, "/api/txpool/v1/transactions/"+confirmed.ID.ToHex(), resp))
	require.True(t, resp.Confirmed)
	require.Empty(t, resp.Queue)

	_, err := queueByName(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	require.Error(t, err)

	unknownID := tpkg.RandTransactionID()
	require.Equal(t, http.StatusNotFound, request(t, e, http.MethodDelete, "/api/txpool/v1/transactions/"+unknownID.ToHex(), nil))
	require.Equal(t, http.StatusNoContent, request(t, e, http.MethodDelete, "/api/txpool/v1/transactions/"+tracked.ID.ToHex(), nil))
	require.False(t, transactionPool.Exists(tracked.ID))
}

func TestRoutes_Processable(t *testing.T) {
	e, transactionPool := setupTestRoutes(t)

	transactions := []*txpool.Transaction{newTransaction(), newTransaction(), newTransaction()}
	_, err := transactionPool.AddTransactions(transactions)
	require.NoError(t, err)

	transactionPool.Start()
	require.Eventually(t, func() bool {
		size, sizeErr := transactionPool.QueueSize(txpool.QueueReady)

		return sizeErr == nil && size == len(transactions)
	}, 5*time.Second, time.Millisecond)

	resp := &TransactionsResponse{}
	require.Equal(t, http.StatusOK, request(t, e, http.MethodGet, "/api/txpool/v1/processable?limit=2", resp))
	require.Len(t, resp.Transactions, 2)
	for _, transaction := range resp.Transactions {
		require.Equal(t, txpool.QueueReady, transaction.Queue)
	}

	require.Equal(t, http.StatusBadRequest, request(t, e, http.MethodGet, "/api/txpool/v1/processable?limit=x", nil))
}
