// Package sync implements the reasoner synchronization protocol: given the
// axiom set a local editing session believes is true, it brings a remote
// reasoning service into agreement with that state using digest comparison
// to pick the cheapest remote operation — nothing, an incremental flush,
// or a full replace — and verifies the outcome.
//
// Protocol flow:
//
//	1. Compute the expected digest from the expected axiom set
//	2. Fetch the remote digest
//	3. remote == expected            → done, no remote mutation
//	   remote == base, changes queued → flush the pending change list
//	   remote == base, no changes     → done (optimistic, no round-trip)
//	   otherwise                      → replace the full axiom set
//	4. Compare the reported digest against the expected one; divergence
//	   is logged, never raised
//
// The flush path exists purely as a bandwidth optimization: when the
// remote is known to sit exactly at a previously observed base state, only
// the delta travels. The replace path is the safe fallback whenever the
// remote state is unrecognized. The protocol never diffs an unknown remote
// state — a delta is only trusted when the caller supplied it against a
// known base.
package sync

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/teranos/kbsync/errors"
	"github.com/teranos/kbsync/kb"
	"github.com/teranos/kbsync/reasoner"
)

// Base pairs a digest previously observed on the remote service with the
// ordered changes that move that state to the expected one. It is a
// caller-supplied hypothesis — the task verifies it against the live
// remote digest before trusting the delta.
type Base struct {
	Digest  kb.Digest
	Pending []kb.Change
}

// Task is a single-use synchronization attempt for one knowledge base.
// Everything it needs is fixed at construction; Run may be called exactly
// once. The task never blocks on more than one remote call at a time and
// never escalates a failure past its own boundary — every internal error
// collapses into the absent Outcome.
type Task struct {
	projectID string
	kbID      kb.ID
	service   reasoner.Service
	logger    *zap.SugaredLogger

	expectedAxioms []kb.Axiom
	expectedDigest kb.Digest
	base           *Base

	ran atomic.Bool
}

// NewTask builds a synchronization task.
//
// projectID keys the task's log trail. base may be nil, in which case the
// incremental flush path is unreachable and any disagreement forces a full
// replace. The expected axiom slice is copied; the task owns its snapshot.
func NewTask(projectID string, kbID kb.ID, service reasoner.Service, base *Base, expectedAxioms []kb.Axiom, logger *zap.SugaredLogger) *Task {
	axioms := make([]kb.Axiom, len(expectedAxioms))
	copy(axioms, expectedAxioms)

	return &Task{
		projectID:      projectID,
		kbID:           kbID,
		service:        service,
		logger:         logger,
		expectedAxioms: axioms,
		expectedDigest: kb.DigestOf(axioms),
		base:           base,
	}
}

// ExpectedDigest returns the digest of the expected axiom set, computed
// once at construction.
func (t *Task) ExpectedDigest() kb.Digest {
	return t.expectedDigest
}

// Run executes the synchronization attempt. Cancellation of ctx while a
// remote response is outstanding aborts the task with the absent outcome;
// no compensating remote call is issued. A second Run returns the absent
// outcome immediately.
func (t *Task) Run(ctx context.Context) Outcome {
	if !t.ran.CompareAndSwap(false, true) {
		t.logger.Warnw("Synchronization task already ran",
			"project", t.projectID,
			"kb", t.kbID,
		)
		return NoOutcome()
	}

	t.logger.Infow("Checking whether the reasoner needs synchronizing",
		"project", t.projectID,
		"kb", t.kbID,
		"expected_digest", t.expectedDigest.Hex(),
	)

	remoteDigest, err := t.service.GetDigest(t.kbID).Await(ctx)
	if err != nil {
		t.logFailure(err, "getting the reasoner digest")
		return NoOutcome()
	}

	return t.reconcile(ctx, remoteDigest)
}

// reconcile is the decision engine: one pass over the three possible
// remote states, at most one mutating call.
func (t *Task) reconcile(ctx context.Context, remoteDigest kb.Digest) Outcome {
	if remoteDigest == t.expectedDigest {
		t.logger.Infow("The reasoner is up to date",
			"project", t.projectID,
			"kb", t.kbID,
			"digest", remoteDigest.Hex(),
		)
		return Synced(t.expectedDigest)
	}

	t.logger.Infow("The reasoner needs synchronizing",
		"project", t.projectID,
		"kb", t.kbID,
		"expected_digest", t.expectedDigest.Hex(),
		"reasoner_digest", remoteDigest.Hex(),
	)

	if t.base != nil && t.base.Digest == remoteDigest {
		if len(t.base.Pending) > 0 {
			return t.flush(ctx)
		}
		// The remote sits exactly at the base and no changes are queued:
		// accept the expected digest without another round-trip.
		return Synced(t.expectedDigest)
	}

	return t.replace(ctx)
}

// flush applies the pending change list — the remote is known to be at the
// base state, so only the delta travels.
func (t *Task) flush(ctx context.Context) Outcome {
	t.logger.Infow("Flushing changes to the reasoner",
		"project", t.projectID,
		"kb", t.kbID,
		"changes", len(t.base.Pending),
	)

	syncedDigest, err := t.service.ApplyChanges(t.kbID, t.base.Pending).Await(ctx)
	if err != nil {
		t.logFailure(err, "flushing changes to the reasoner")
		return NoOutcome()
	}

	t.logger.Infow("Changes have been flushed",
		"project", t.projectID,
		"kb", t.kbID,
		"digest", syncedDigest.Hex(),
	)
	t.checkSyncedDigest(syncedDigest)
	return Synced(syncedDigest)
}

// replace installs the full expected axiom set — the safe fallback when
// the remote state is unrecognized.
func (t *Task) replace(ctx context.Context) Outcome {
	t.logger.Infow("Replacing axioms in the reasoner",
		"project", t.projectID,
		"kb", t.kbID,
		"axioms", len(t.expectedAxioms),
	)

	syncedDigest, err := t.service.ReplaceAxioms(t.kbID, t.expectedAxioms).Await(ctx)
	if err != nil {
		t.logFailure(err, "replacing the axioms in the reasoner")
		return NoOutcome()
	}

	t.logger.Infow("Axioms have been replaced",
		"project", t.projectID,
		"kb", t.kbID,
		"digest", syncedDigest.Hex(),
	)
	t.checkSyncedDigest(syncedDigest)
	return Synced(syncedDigest)
}

// checkSyncedDigest compares the digest a mutating call reported against
// the expected one. A mismatch indicates a bug or a concurrent external
// modification; it is surfaced as a warning while the actual digest still
// flows to the caller.
func (t *Task) checkSyncedDigest(syncedDigest kb.Digest) {
	if !Verify(t.expectedDigest, syncedDigest) {
		t.logger.Warnw("The expected digest is NOT THE SAME as the reasoner digest",
			"project", t.projectID,
			"kb", t.kbID,
			"expected_digest", t.expectedDigest.Hex(),
			"reasoner_digest", syncedDigest.Hex(),
		)
	}
}

// logFailure records why the attempt aborted. An interrupt (context
// cancellation) and a remote execution failure are logged differently but
// handled identically: the task returns the absent outcome.
func (t *Task) logFailure(err error, while string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		t.logger.Infow("Interrupted whilst "+while,
			"project", t.projectID,
			"kb", t.kbID,
		)
		return
	}
	t.logger.Infow("There was a problem "+while,
		"project", t.projectID,
		"kb", t.kbID,
		"cause", err.Error(),
	)
}
