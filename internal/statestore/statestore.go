package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/adamstrass/payroll-dashboard/internal/payroll"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "payroll:state:"

//go:generate mockgen -source=statestore.go -destination=mock/statestore_mock.go -package=mock
type Store interface {
	// Load returns the persisted state for the identity. An absent or
	// corrupt value yields a freshly seeded state; Load never fails on
	// a parse error, only on backend unavailability.
	Load(ctx context.Context, identity string) (payroll.State, error)
	// Save persists the full state under the identity key.
	Save(ctx context.Context, identity string, state payroll.State) error
}

type redisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func New(rdb *redis.Client, logger ...*zap.Logger) Store {
	l := zap.L().Named("statestore")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("statestore")
	}
	return &redisStore{rdb: rdb, logger: l}
}

func stateKey(identity string) string {
	return keyPrefix + identity
}

func (s *redisStore) Load(ctx context.Context, identity string) (payroll.State, error) {
	raw, err := s.rdb.Get(ctx, stateKey(identity)).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Info("no state for identity, seeding starter roster",
			zap.String("identity", identity),
		)
		return SeedState(time.Now()), nil
	}
	if err != nil {
		return payroll.State{}, fmt.Errorf("load state for %q: %w", identity, err)
	}

	var state payroll.State
	if err := json.Unmarshal(raw, &state); err != nil {
		// Corrupt persisted data is treated as absent, never fatal.
		s.logger.Warn("stored state is corrupt, reseeding",
			zap.String("identity", identity),
			zap.Error(err),
		)
		return SeedState(time.Now()), nil
	}

	return normalize(state, time.Now()), nil
}

func (s *redisStore) Save(ctx context.Context, identity string, state payroll.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state for %q: %w", identity, err)
	}

	if err := s.rdb.Set(ctx, stateKey(identity), raw, 0).Err(); err != nil {
		return fmt.Errorf("save state for %q: %w", identity, err)
	}
	return nil
}

// normalize validates the decoded shape explicitly rather than trusting
// the stored blob: nil maps are re-initialised and a malformed selected
// month falls back to the current one.
func normalize(state payroll.State, now time.Time) payroll.State {
	if !payroll.ValidMonthKey(state.SelectedMonth) {
		state.SelectedMonth = payroll.CurrentMonthKey(now)
	}
	if state.Employees == nil {
		state.Employees = []payroll.Employee{}
	}
	if state.Records == nil {
		state.Records = make(map[string]map[string]payroll.PaymentRecord)
	}
	for month, recs := range state.Records {
		if recs == nil {
			state.Records[month] = make(map[string]payroll.PaymentRecord)
			continue
		}
		for id, rec := range recs {
			if rec.Proofs == nil {
				rec.Proofs = []payroll.ProofRef{}
				recs[id] = rec
			}
		}
	}
	return state
}
