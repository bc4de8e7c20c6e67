/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// hbsim is a small in-process simulator for the Honey Badger epoch
// engine. It wires N engines together over an in-memory transport (no
// sockets, no serialization) using the simpleacs reference ACS, and
// drives rounds of message delivery until every node has emitted the
// requested number of batches.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	hbbft "github.com/lab10-coop/hbbft"
	"github.com/lab10-coop/hbbft/pkg/acs/simpleacs"
)

type arguments struct {
	nodes        int
	batchSize    int
	txsPerNode   int
	targetEpochs int
	maxRounds    int
	logLevel     string
}

func parseArgs(args []string) (*arguments, error) {
	app := kingpin.New("hbsim", "In-process simulator for the Honey Badger BFT epoch engine.")
	nodes := app.Flag("nodes", "Number of simulated nodes.").Default("4").Int()
	batchSize := app.Flag("batch-size", "Target batch size (0 selects a default proportional to n^2*log(n)).").Default("0").Int()
	txsPerNode := app.Flag("txs-per-node", "Seed transactions contributed by each node.").Default("4").Int()
	targetEpochs := app.Flag("epochs", "Stop once every node has emitted at least this many batches.").Default("2").Int()
	maxRounds := app.Flag("max-rounds", "Safety cap on simulation rounds.").Default("10000").Int()
	logLevel := app.Flag("logLevel", "debug, info, warn, or error.").Default("info").Enum("debug", "info", "warn", "error")

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	if *nodes < 1 {
		return nil, errors.Errorf("--nodes must be at least 1")
	}

	return &arguments{
		nodes:        *nodes,
		batchSize:    *batchSize,
		txsPerNode:   *txsPerNode,
		targetEpochs: *targetEpochs,
		maxRounds:    *maxRounds,
		logLevel:     *logLevel,
	}, nil
}

// envelope is one message in flight in the simulated transport: who sent
// it, and the Honey Badger wire envelope it carries.
type envelope struct {
	sender int
	msg    hbbft.Message[int]
}

func (a *arguments) execute() error {
	zapLevel := zap.NewAtomicLevel()
	switch a.logLevel {
	case "debug":
		zapLevel.SetLevel(zap.DebugLevel)
	case "warn":
		zapLevel.SetLevel(zap.WarnLevel)
	case "error":
		zapLevel.SetLevel(zap.ErrorLevel)
	default:
		zapLevel.SetLevel(zap.InfoLevel)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zapLevel
	logger, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "hbsim: could not build logger")
	}
	defer logger.Sync() //nolint:errcheck

	runID := uuid.NewString()
	sugared := logger.Sugar().With("run_id", runID)

	allIDs := make([]int, a.nodes)
	for i := range allIDs {
		allIDs[i] = i
	}

	engines := make([]*hbbft.Engine[int, string], a.nodes)
	for i := range engines {
		seed := make([]string, 0, a.txsPerNode)
		for j := 0; j < a.txsPerNode; j++ {
			seed = append(seed, fmt.Sprintf("node%d-tx%d", i, j))
		}

		engineCfg := hbbft.Config[int, string]{
			ID:         i,
			AllIDs:     allIDs,
			BatchSize:  a.batchSize,
			InitialTxs: seed,
			Codec:      hbbft.NewOrderedCBORCodec[string](),
			NewACS:     simpleacs.NewFactory[int](),
			Logger:     hbbft.NewZapLogger(sugared.With("node_id", i)),
		}

		e, err := hbbft.New(engineCfg)
		if err != nil {
			return errors.Wrapf(err, "hbsim: node %d failed to start", i)
		}
		engines[i] = e
	}

	inboxes := make([][]envelope, a.nodes)

	allCaughtUp := func() bool {
		for _, e := range engines {
			if e.Epoch() < uint64(a.targetEpochs) {
				return false
			}
		}
		return true
	}

	round := 0
	for ; round < a.maxRounds && !allCaughtUp(); round++ {
		for i, e := range engines {
			for {
				tm, ok := e.NextMessage()
				if !ok {
					break
				}
				if dest, unicast := tm.Target.NodeID(); unicast {
					inboxes[dest] = append(inboxes[dest], envelope{sender: i, msg: tm.Message})
					continue
				}
				for _, peer := range allIDs {
					if peer == i {
						continue
					}
					inboxes[peer] = append(inboxes[peer], envelope{sender: i, msg: tm.Message})
				}
			}
		}

		for i, e := range engines {
			pending := inboxes[i]
			inboxes[i] = nil
			for _, env := range pending {
				if err := e.HandleMessage(env.sender, env.msg); err != nil {
					sugared.Errorw("handle message failed", "node_id", i, "sender", env.sender, "error", err)
				}
			}
		}

		for i, e := range engines {
			for {
				batch, ok := e.NextOutput()
				if !ok {
					break
				}
				sugared.Infow("batch delivered", "node_id", i, "epoch", batch.Epoch, "size", len(batch.Transactions))
			}
		}
	}

	if !allCaughtUp() {
		return errors.Errorf("hbsim: did not reach %d epochs within %d rounds", a.targetEpochs, a.maxRounds)
	}

	sugared.Infow("simulation complete", "rounds", round)
	return nil
}

func main() {
	kingpin.Version("0.0.1")
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("failed to parse arguments, %s, try --help", err)
	}
	if err := args.execute(); err != nil {
		kingpin.Fatalf("%s", err)
	}
}
