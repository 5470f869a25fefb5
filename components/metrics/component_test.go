package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/iota-txpool/components/metrics/collector"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	txpoolv1 "github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/v1"
	"github.com/iotaledger/iota.go/v4/tpkg"
)

func scrape(t *testing.T, metricsCollector *collector.Collector) string {
	rec := httptest.NewRecorder()
	newExporter(metricsCollector).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	return string(body)
}

func TestTxPoolMetrics(t *testing.T) {
	original := *ParamsMetrics
	t.Cleanup(func() { *ParamsMetrics = original })
	ParamsMetrics.TxPool.QueueSizes = true

	transactionPool := txpoolv1.New(log.NewLogger())
	deps.TransactionPool = transactionPool
	deps.Collector = collector.New()
	require.NoError(t, deps.Collector.RegisterCollection(TxPoolMetrics))

	transaction := &txpool.Transaction{
		ID:              tpkg.RandTransactionID(),
		SenderPublicKey: ed25519.PublicKey(tpkg.Rand32ByteArray()),
		Type:            txpool.TransactionTypeVote,
	}
	require.NoError(t, transactionPool.AddTransaction(transaction))
	require.ErrorIs(t, transactionPool.AddTransaction(transaction), txpool.ErrTransactionExists)

	metrics := scrape(t, deps.Collector)
	require.Contains(t, metrics, `txpool_queue_size{queue="received"} 1`)
	require.Contains(t, metrics, `txpool_queue_size{queue="ready"} 0`)
	require.Contains(t, metrics, `txpool_transactions_added_total{queue="received"} 1`)
	require.Contains(t, metrics, `txpool_transactions_rejected_total 1`)

	ParamsMetrics.TxPool.QueueSizes = false
	transactionPool.RemoveTransactions(transaction.ID)

	metrics = scrape(t, deps.Collector)
	require.NotContains(t, metrics, `txpool_queue_size{`)
	require.Contains(t, metrics, `txpool_transactions_removed_total{queue="received",reason="evicted"} 1`)
}
