// This program runs a scripted demonstration of the blockchain core:
// identities are created, transfers are pooled, and blocks are mined
// one after the other with each block linking to the previous proof.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/google/uuid"
	"github.com/minichain/minichain/foundation/blockchain/chain"
	"github.com/minichain/minichain/foundation/blockchain/identity"
	"github.com/minichain/minichain/foundation/blockchain/scenario"
	"github.com/minichain/minichain/foundation/blockchain/transaction"
	"github.com/minichain/minichain/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("DEMO")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Demo struct {
			ScenarioFile string        // Blank runs the built-in scenario.
			Difficulty   int           `conf:"default:0"` // Overrides the scenario difficulty when greater than zero.
			MineTimeout  time.Duration `conf:"default:5m"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "DEMO"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting demo", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Scenario Support

	scn := scenario.Default()
	if cfg.Demo.ScenarioFile != "" {
		scn, err = scenario.Load(cfg.Demo.ScenarioFile)
		if err != nil {
			return fmt.Errorf("loading scenario: %w", err)
		}
	}
	if cfg.Demo.Difficulty > 0 {
		scn.Difficulty = cfg.Demo.Difficulty
	}

	// Tag every event from this run with a unique trace id.
	traceID := uuid.NewString()
	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...), "traceid", traceID)
	}

	// =========================================================================
	// Identity Support

	// The identities are owned here and outlive any transaction or block
	// that references them.
	identities := make(map[string]*identity.Identity, len(scn.Participants))
	for _, label := range scn.Participants {
		idn, err := identity.Generate(label)
		if err != nil {
			return fmt.Errorf("generating identity %q: %w", label, err)
		}
		identities[label] = idn

		log.Infow("startup", "status", "identity created", "label", label, "id", shortID(idn.ID()))
	}

	// =========================================================================
	// Run The Scenario

	pool := transaction.NewPool(time.Now)
	blockchain := chain.New()

	for i, round := range scn.Rounds {
		for _, transfer := range round.Transfers {
			pool.Transfer(identities[transfer.From], identities[transfer.To], transfer.Value)
		}
		dumpPool(log, pool)

		if _, err := blockchain.CreateBlock(pool, scn.Difficulty); err != nil {
			return fmt.Errorf("creating block %d: %w", i, err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Demo.MineTimeout)
		hash, err := blockchain.MineLastBlock(ctx, ev)
		cancel()
		if err != nil {
			return fmt.Errorf("mining block %d: %w", i, err)
		}
		log.Infow("mining", "status", "block sealed", "block", i, "hash", hash)

		pool.Clear()
	}

	dumpChain(log, blockchain)

	return nil
}

// =============================================================================

// dumpPool writes the pending transactions to the log in pool order.
func dumpPool(log *zap.SugaredLogger, pool *transaction.Pool) {
	log.Infow("pool", "status", "pending transactions", "count", pool.Count())
	for _, tx := range pool.Items() {
		log.Infow("pool", "tx", tx.String())
	}
}

// dumpChain writes every block and its contained transactions to the log.
func dumpChain(log *zap.SugaredLogger, blockchain *chain.Blockchain) {
	log.Infow("chain", "status", "chain contents", "blocks", blockchain.Count(), "lasthash", blockchain.LastHash())

	for i, block := range blockchain.Blocks() {
		log.Infow("chain", "block", i,
			"previoushash", block.Header.PrevBlockHash,
			"difficulty", block.Header.Difficulty,
			"transhash", block.Header.TransHash,
			"nonce", block.Header.Nonce,
			"transactions", block.Trans.Count())

		for _, tx := range block.Trans.Items() {
			log.Infow("chain", "block", i, "tx", tx.String())
		}
	}
}

// shortID trims an identifier for readable log output.
func shortID(id identity.ID) string {
	const width = 16

	if len(id) <= width {
		return string(id)
	}

	return string(id[:width]) + "..."
}
