package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/shiftplan-backend/internal/data/aggregates"
	"github.com/yungbote/shiftplan-backend/internal/platform/dbctx"
)

// InjectedTxRunner injects transaction failures around an aggregate body.
//
// With Inner set the body runs inside Inner's real transaction and an injected
// commit failure rolls that transaction back, so retried writes start clean.
// Without Inner the body runs against a bare context.
type InjectedTxRunner struct {
	mu sync.Mutex

	Inner aggregates.TxRunner

	FailBegin  error
	FailCommit error
	// FailCommitTimes limits FailCommit to the first N attempts; 0 means every attempt.
	FailCommitTimes int

	BeginCalls    int
	CommitCalls   int
	RollbackCalls int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	attempt := r.BeginCalls
	failBegin := r.FailBegin
	failCommit := r.FailCommit
	if r.FailCommitTimes > 0 && attempt > r.FailCommitTimes {
		failCommit = nil
	}
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}

	body := func(dbc dbctx.Context) error {
		if fn != nil {
			if err := fn(dbc); err != nil {
				return err
			}
		}
		return failCommit
	}

	var err error
	if r.Inner != nil {
		err = r.Inner.InTx(ctx, body)
	} else {
		err = body(dbctx.Context{Ctx: ctx})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
		return err
	}
	r.CommitCalls++
	return nil
}
