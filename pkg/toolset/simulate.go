package toolset

import (
	"fmt"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	flag "github.com/spf13/pflag"

	"github.com/iotaledger/hive.go/app/configuration"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/ds/types"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/lo"
	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/syncutils"
	"github.com/iotaledger/iota-txpool/pkg/metrics"
	"github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool"
	txpoolv1 "github.com/iotaledger/iota-txpool/pkg/protocol/engine/txpool/v1"
	"github.com/iotaledger/iota-txpool/pkg/utils"
	iotago "github.com/iotaledger/iota.go/v4"
)

type simulationSettings struct {
	duration         time.Duration
	submissionRate   int
	blockInterval    time.Duration
	reportInterval   time.Duration
	senders          int
	processableLimit int
	invalidRatio     float64
	revertRatio      float64
	multisigRatio    float64

	// applied contains the ids of the transactions of the applied blocks, they fail the verification.
	applied      map[iotago.TransactionID]types.Empty
	appliedMutex syncutils.RWMutex
}

func (s *simulationSettings) setApplied(block *txpool.Block, applied bool) {
	s.appliedMutex.Lock()
	defer s.appliedMutex.Unlock()

	if s.applied == nil {
		s.applied = make(map[iotago.TransactionID]types.Empty)
	}

	for _, transaction := range block.Transactions {
		if applied {
			s.applied[transaction.ID] = types.Void
		} else {
			delete(s.applied, transaction.ID)
		}
	}
}

func (s *simulationSettings) isApplied(id iotago.TransactionID) bool {
	s.appliedMutex.RLock()
	defer s.appliedMutex.RUnlock()

	_, applied := s.applied[id]

	return applied
}

type simulationResult struct {
	QueueSizes map[txpool.QueueName]int `json:"queueSizes"`
	Submitted  uint64                   `json:"submitted"`
	Admitted   uint64                   `json:"admitted"`
	Rejected   uint64                   `json:"rejected"`
	Confirmed  uint64                   `json:"confirmed"`
	Demoted    uint64                   `json:"demoted"`
	Restored   uint64                   `json:"restored"`
	Expired    uint64                   `json:"expired"`
	Blocks     int                      `json:"blocks"`
	Reverted   int                      `json:"reverted"`
}

func simulate(args []string) error {
	fs := configuration.NewUnsortedFlagSet("", flag.ContinueOnError)
	durationFlag := fs.Duration(FlagToolDuration, 10*time.Second, "how long the simulation runs")
	submissionRateFlag := fs.Int(FlagToolSubmissionRate, 200, "the number of transactions submitted per second")
	blockIntervalFlag := fs.Duration(FlagToolBlockInterval, time.Second, "the interval in which blocks are forged from the ready queue")
	reportIntervalFlag := fs.Duration(FlagToolReportInterval, time.Second, "the interval in which the queue sizes are reported")
	sendersFlag := fs.Int(FlagToolSenders, 20, "the number of distinct senders")
	maxReceivedFlag := fs.Int(FlagToolMaxReceived, txpoolv1.DefaultMaxReceivedTransactions, "the capacity of the received queue")
	maxReadyFlag := fs.Int(FlagToolMaxReady, txpoolv1.DefaultMaxReadyTransactions, "the capacity of the ready queue")
	processableLimitFlag := fs.Int(FlagToolProcessableLimit, txpoolv1.DefaultMaxReadyTransactions, "the number of ready transactions included in a block")
	invalidRatioFlag := fs.Float64(FlagToolInvalidRatio, 0.05, "the share of transactions that fail validation")
	revertRatioFlag := fs.Float64(FlagToolRevertRatio, 0.1, "the share of blocks that are reverted again")
	multisigRatioFlag := fs.Float64(FlagToolMultisigRatio, 0.1, "the share of transactions that wait for additional signatures")
	outputJSONFlag := fs.Bool(FlagToolOutputJSON, false, FlagToolDescriptionOutputJSON)

	fs.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", ToolSimulate)
		fs.PrintDefaults()
		println(fmt.Sprintf("\nexample: %s --%s %s --%s %d",
			ToolSimulate,
			FlagToolDuration,
			"30s",
			FlagToolSubmissionRate,
			500))
	}

	if err := parseFlagSet(fs, args); err != nil {
		return err
	}

	switch {
	case *submissionRateFlag <= 0:
		return ierrors.Errorf("'%s' must be positive", FlagToolSubmissionRate)
	case *sendersFlag <= 0:
		return ierrors.Errorf("'%s' must be positive", FlagToolSenders)
	case *blockIntervalFlag <= 0 || *reportIntervalFlag <= 0:
		return ierrors.Errorf("'%s' and '%s' must be positive", FlagToolBlockInterval, FlagToolReportInterval)
	}

	settings := &simulationSettings{
		duration:         *durationFlag,
		submissionRate:   *submissionRateFlag,
		blockInterval:    *blockIntervalFlag,
		reportInterval:   *reportIntervalFlag,
		senders:          *sendersFlag,
		processableLimit: *processableLimitFlag,
		invalidRatio:     *invalidRatioFlag,
		revertRatio:      *revertRatioFlag,
		multisigRatio:    *multisigRatioFlag,
	}

	logger := log.NewLogger()
	simulationClock := clock.New()

	transactionPool := txpoolv1.New(logger,
		txpoolv1.WithClock(simulationClock),
		txpoolv1.WithMaxReceivedTransactions(*maxReceivedFlag),
		txpoolv1.WithMaxReadyTransactions(*maxReadyFlag),
		txpoolv1.WithValidateFunc(settings.validate),
		txpoolv1.WithVerifyFunc(settings.verify),
		txpoolv1.WithReadyForProcessingFunc(func(transaction *txpool.Transaction) bool {
			return simulationClock.Since(transaction.ReceivedAt) >= settings.blockInterval
		}),
	)

	result := runSimulation(logger, simulationClock, transactionPool, settings)

	if *outputJSONFlag {
		return printJSON(result)
	}

	fmt.Printf("submitted: %d, admitted: %d, rejected: %d, confirmed: %d, demoted: %d, restored: %d, expired: %d\n",
		result.Submitted, result.Admitted, result.Rejected, result.Confirmed, result.Demoted, result.Restored, result.Expired)
	fmt.Printf("blocks: %d, reverted: %d\n", result.Blocks, result.Reverted)
	for _, queueName := range txpool.QueueNames {
		fmt.Printf("%-10s %d\n", queueName, result.QueueSizes[queueName])
	}

	return nil
}

func runSimulation(logger log.Logger, simulationClock clock.Clock, transactionPool txpool.TransactionPool, settings *simulationSettings) *simulationResult {
	poolMetrics := metrics.NewPoolMetrics(transactionPool.Events())
	result := &simulationResult{}

	senders := make([]ed25519.PublicKey, settings.senders)
	for i := range senders {
		senders[i] = utils.RandPublicKey()
	}

	submissionTicker := simulationClock.Ticker(time.Second / time.Duration(settings.submissionRate))
	defer submissionTicker.Stop()
	blockTicker := simulationClock.Ticker(settings.blockInterval)
	defer blockTicker.Stop()
	reportTicker := simulationClock.Ticker(settings.reportInterval)
	defer reportTicker.Stop()
	deadline := simulationClock.Timer(settings.duration)
	defer deadline.Stop()

	transactionPool.Start()
	defer transactionPool.Shutdown()

	var lastBlock *txpool.Block
	for {
		select {
		case <-submissionTicker.C:
			result.Submitted++
			_ = transactionPool.AddTransaction(utils.RandTransaction(senders[utils.RandomIntn(len(senders))]))

		case <-blockTicker.C:
			if lastBlock != nil && utils.RandomChance(settings.revertRatio) {
				settings.setApplied(lastBlock, false)
			if err := transactionPool.OnDeleteBlock(lastBlock); err != nil {
					logger.LogWarnf("failed to revert block: %s", err)
				}
				result.Reverted++

				_ = transactionPool.OnRoundRollback(lo.Map(lastBlock.Transactions, func(transaction *txpool.Transaction) ed25519.PublicKey {
					return transaction.SenderPublicKey
				}))
				lastBlock = nil

				continue
			}

			lastBlock = txpool.NewBlock(transactionPool.ProcessableTransactions(settings.processableLimit)...)
			settings.setApplied(lastBlock, true)
			if err := transactionPool.OnNewBlock(lastBlock); err != nil {
				logger.LogWarnf("failed to apply block: %s", err)
			}
			result.Blocks++

		case <-reportTicker.C:
			queueSizes := transactionPool.QueueSizes()
			logger.LogInfof("received: %d, validated: %d, pending: %d, verified: %d, ready: %d",
				queueSizes[txpool.QueueReceived],
				queueSizes[txpool.QueueValidated],
				queueSizes[txpool.QueuePending],
				queueSizes[txpool.QueueVerified],
				queueSizes[txpool.QueueReady],
			)

		case <-deadline.C:
			result.QueueSizes = transactionPool.QueueSizes()
			result.Admitted = poolMetrics.Admitted.Load()
			result.Rejected = poolMetrics.Rejected.Load()
			result.Confirmed = poolMetrics.Confirmed.Load()
			result.Demoted = poolMetrics.Demoted.Load()
			result.Restored = poolMetrics.Restored.Load()
			result.Expired = poolMetrics.Expired.Load()

			return result
		}
	}
}

func (s *simulationSettings) validate(transactions []*txpool.Transaction) (valid []*txpool.Transaction, invalid []*txpool.Transaction) {
	for _, transaction := range transactions {
		if float64(transaction.ID[0]) < s.invalidRatio*256 {
			invalid = append(invalid, transaction)
		} else {
			valid = append(valid, transaction)
		}
	}

	return valid, invalid
}

func (s *simulationSettings) verify(transactions []*txpool.Transaction) (verified []*txpool.Transaction, pending []*txpool.Transaction, invalid []*txpool.Transaction) {
	for _, transaction := range transactions {
		if s.isApplied(transaction.ID) {
			invalid = append(invalid, transaction)

			continue
		}

		if transaction.Type == txpool.TransactionTypeMultisignature || float64(transaction.ID[1]) < s.multisigRatio*256 {
			pending = append(pending, transaction)
		} else {
			verified = append(verified, transaction)
		}
	}

	return verified, pending, invalid
}
