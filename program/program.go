// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"

	"github.com/danielhkuo/nft-contest/metrics"
	"github.com/danielhkuo/nft-contest/pda"
)

type Config struct {
	Logger    *slog.Logger
	Clock     clockwork.Clock
	DB        *sql.DB
	ProgramID solana.PublicKey
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.DB == nil {
		return errors.New("database connection is required")
	}
	if cfg.ProgramID.IsZero() {
		return errors.New("program id is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return nil
}

// Program executes contest instructions. Each instruction runs in a single
// database transaction and either commits every record and balance change
// or none of them.
type Program struct {
	log   *slog.Logger
	clock clockwork.Clock
	db    *sql.DB
	pda   pda.Deriver
}

func New(cfg Config) (*Program, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Program{
		log:   cfg.Logger,
		clock: cfg.Clock,
		db:    cfg.DB,
		pda:   pda.New(cfg.ProgramID),
	}, nil
}

// PDA returns the address deriver bound to this program id.
func (p *Program) PDA() pda.Deriver {
	return p.pda
}

func (p *Program) now() time.Time {
	return p.clock.Now()
}

// execute runs fn inside a transaction and records the outcome.
func (p *Program) execute(ctx context.Context, instruction string, fn func(tx *sql.Tx) error) error {
	start := time.Now()
	err := p.runTx(ctx, fn)
	metrics.InstructionDuration.WithLabelValues(instruction).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.InstructionsTotal.WithLabelValues(instruction, string(KindOf(err))).Inc()
		if KindOf(err) == KindInternal {
			p.log.Error("instruction failed", "instruction", instruction, "error", err)
		} else {
			p.log.Debug("instruction rejected", "instruction", instruction, "error", err)
		}
		return err
	}
	metrics.InstructionsTotal.WithLabelValues(instruction, "ok").Inc()
	return nil
}

func (p *Program) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// checkAddress verifies a client-supplied address against the derived
// one. A zero value means the client did not supply it.
func checkAddress(name string, supplied, derived solana.PublicKey) error {
	if supplied.IsZero() || supplied.Equals(derived) {
		return nil
	}
	return fmt.Errorf("%s: got %s, want %s: %w", name, supplied, derived, ErrAddressMismatch)
}

// within reports whether ts lies in [start, end).
func within(ts, start, end int64) bool {
	return ts >= start && ts < end
}
