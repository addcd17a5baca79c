// Package reasoner defines the client contract for a remote reasoning
// service and a websocket implementation of it.
//
// The service holds one axiom set per knowledge base and answers three
// operations, each identified by the digest of the state it leaves behind.
// All three are asynchronous: they return a Call immediately and the
// caller blocks on Call.Await when it needs the result. The
// synchronization task relies on this shape to keep at most one call in
// flight at a time.
package reasoner

import "github.com/teranos/kbsync/kb"

// Service is the asynchronous contract of the remote reasoning service.
//
// Each method issues a request and returns a handle to its eventual
// response. A Call resolves to either the digest the service reports or a
// causal error (transport failure or remote processing fault); awaiting it
// can also end early when the caller's context is cancelled.
type Service interface {
	// GetDigest fetches the current digest of the knowledge base.
	GetDigest(kbID kb.ID) *Call

	// ApplyChanges applies the changes in list order and resolves to the
	// resulting digest.
	ApplyChanges(kbID kb.ID, changes []kb.Change) *Call

	// ReplaceAxioms discards the current remote axiom set, installs the
	// given set, and resolves to the resulting digest.
	ReplaceAxioms(kbID kb.ID, axioms []kb.Axiom) *Call
}
