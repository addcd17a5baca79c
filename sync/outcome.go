package sync

import "github.com/teranos/kbsync/kb"

// Outcome is the result of one synchronization attempt: either the digest
// the remote service now reports, or nothing at all. An absent outcome
// means the synchronization state is unknown — the attempt was interrupted
// or a remote call failed — and callers must not assume the reasoner is
// current.
type Outcome struct {
	digest kb.Digest
	ok     bool
}

// Synced wraps a confirmed digest in a present outcome.
func Synced(d kb.Digest) Outcome {
	return Outcome{digest: d, ok: true}
}

// NoOutcome is the absent outcome.
func NoOutcome() Outcome {
	return Outcome{}
}

// Digest returns the resulting digest and whether one is present.
func (o Outcome) Digest() (kb.Digest, bool) {
	return o.digest, o.ok
}

// Absent reports whether the attempt failed to produce a result.
func (o Outcome) Absent() bool {
	return !o.ok
}
