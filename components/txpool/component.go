package txpool

import (
	"context"
	"time"

	"github.com/labstack/gommon/bytes"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/iota-txpool/pkg/daemon"
	"github.com/iotaledger/iota-txpool/pkg/metrics"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/checkers"
	txpoolv1 "github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/v1"
	"github.com/iotaledger/iota-txpool/pkg/restapi"
)

func init() {
	Component = &app.Component{
		Name:      "TransactionPool",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Params:    params,
		Provide:   provide,
		Configure: configure,
		Run:       run,
	}
}

var (
	Component *app.Component
	deps      dependencies
)

// ErrInvalidParameter is returned if the configuration of the transaction pool can not be applied.
var ErrInvalidParameter = ierrors.New("invalid transaction pool parameter")

type dependencies struct {
	dig.In

	TransactionPool  txpool.TransactionPool
	PoolMetrics      *metrics.PoolMetrics
	RestRouteManager *restapi.RestRouteManager `optional:"true"`
}

func provide(c *dig.Container) error {
	if err := c.Provide(func() (txpool.TransactionPool, error) {
		opts, err := poolOptions()
		if err != nil {
			return nil, err
		}

		return txpoolv1.New(Component.Logger, opts...), nil
	}); err != nil {
		return err
	}

	return c.Provide(func(transactionPool txpool.TransactionPool) *metrics.PoolMetrics {
		return metrics.NewPoolMetrics(transactionPool.Events())
	})
}

func poolOptions() ([]options.Option[txpoolv1.TransactionPool], error) {
	demotionCriteria := make([]checkers.Criterion, 0, len(ParamsTxPool.DemotionCriteria))
	for _, name := range ParamsTxPool.DemotionCriteria {
		criterion, err := checkers.ParseCriterion(name)
		if err != nil {
			return nil, err
		}
		demotionCriteria = append(demotionCriteria, criterion)
	}

	rejectedTransactionsBytes, err := bytes.Parse(ParamsTxPool.Caches.RejectedTransactionsSize)
	if err != nil {
		return nil, ierrors.Wrapf(err, "invalid size of the rejected transactions cache: %s", ParamsTxPool.Caches.RejectedTransactionsSize)
	}
	if rejectedTransactionsBytes <= 0 {
		return nil, ierrors.Wrapf(ErrInvalidParameter, "size of the rejected transactions cache must be positive: %s", ParamsTxPool.Caches.RejectedTransactionsSize)
	}

	for name, interval := range map[string]time.Duration{
		"validate":              ParamsTxPool.Intervals.Validate,
		"verify":                ParamsTxPool.Intervals.Verify,
		"process":               ParamsTxPool.Intervals.Process,
		"expire":                ParamsTxPool.Intervals.Expire,
		"transactionTTL":        ParamsTxPool.TransactionTTL,
		"pendingTransactionTTL": ParamsTxPool.PendingTransactionTTL,
	} {
		if interval <= 0 {
			return nil, ierrors.Wrapf(ErrInvalidParameter, "%s must be positive, got %s", name, interval)
		}
	}

	for name, limit := range map[string]int{
		"maxReceivedTransactions": ParamsTxPool.Limits.MaxReceivedTransactions,
		"maxReadyTransactions":    ParamsTxPool.Limits.MaxReadyTransactions,
		"validateBatchSize":       ParamsTxPool.Limits.ValidateBatchSize,
		"verifyBatchSize":         ParamsTxPool.Limits.VerifyBatchSize,
		"confirmedTransactions":   ParamsTxPool.Caches.ConfirmedTransactions,
	} {
		if limit <= 0 {
			return nil, ierrors.Wrapf(ErrInvalidParameter, "%s must be positive, got %d", name, limit)
		}
	}

	return []options.Option[txpoolv1.TransactionPool]{
		txpoolv1.WithMaxReceivedTransactions(ParamsTxPool.Limits.MaxReceivedTransactions),
		txpoolv1.WithMaxReadyTransactions(ParamsTxPool.Limits.MaxReadyTransactions),
		txpoolv1.WithMaxPendingProcessable(ParamsTxPool.Limits.MaxPendingProcessable),
		txpoolv1.WithBatchLimits(ParamsTxPool.Limits.ValidateBatchSize, ParamsTxPool.Limits.VerifyBatchSize),
		txpoolv1.WithJobIntervals(
			ParamsTxPool.Intervals.Validate,
			ParamsTxPool.Intervals.Verify,
			ParamsTxPool.Intervals.Process,
			ParamsTxPool.Intervals.Expire,
		),
		txpoolv1.WithTransactionTTL(ParamsTxPool.TransactionTTL),
		txpoolv1.WithPendingTransactionTTL(ParamsTxPool.PendingTransactionTTL),
		txpoolv1.WithCacheSizes(ParamsTxPool.Caches.ConfirmedTransactions, int(rejectedTransactionsBytes)),
		txpoolv1.WithNewBlockDemotionCriteria(demotionCriteria...),
	}, nil
}

func configure() error {
	deps.TransactionPool.Events().TransactionRejected.Hook(func(transaction *txpool.Transaction, err error) {
		Component.LogDebugf("TransactionRejected: %s - %s", transaction.ID, err)
	})

	deps.TransactionPool.Events().TransactionsDemoted.Hook(func(transactions []*txpool.Transaction) {
		Component.LogDebugf("TransactionsDemoted: %d", len(transactions))
	})

	deps.TransactionPool.Events().TransactionsRestored.Hook(func(transactions []*txpool.Transaction) {
		Component.LogDebugf("TransactionsRestored: %d", len(transactions))
	})

	if deps.RestRouteManager != nil {
		setupRoutes(deps.RestRouteManager.AddRoute("txpool/v1"))
	}

	return nil
}

func run() error {
	return Component.Daemon().BackgroundWorker(Component.Name, func(ctx context.Context) {
		deps.TransactionPool.Start()
		<-ctx.Done()
		Component.LogInfo("Gracefully shutting down the TransactionPool...")
		deps.TransactionPool.Shutdown()
	}, daemon.PriorityTransactionPool)
}
