package reasoner

// Wire protocol between a reasoner client and the reasoning service
// endpoint. One JSON request envelope per operation, one JSON response per
// request, correlated by request ID. Responses may arrive out of order —
// the service is free to interleave work for different knowledge bases.
//
// Axioms travel in their canonical text form ("SubClassOf(Dog Animal)")
// and digests as lowercase hex. Both sides re-parse rather than trusting
// structure, so a malformed request fails one response instead of the
// session.

// OpType identifies the requested operation.
type OpType string

const (
	// OpGetDigest asks for the current digest of a knowledge base.
	OpGetDigest OpType = "get_digest"

	// OpApplyChanges applies an ordered change list to a knowledge base.
	OpApplyChanges OpType = "apply_changes"

	// OpReplaceAxioms replaces a knowledge base's full axiom set.
	OpReplaceAxioms OpType = "replace_axioms"
)

// ChangeWire is one change record on the wire: "add" or "remove" plus the
// axiom's canonical text form.
type ChangeWire struct {
	Op    string `json:"op"`
	Axiom string `json:"axiom"`
}

// Request is the envelope for all client-to-service messages.
type Request struct {
	ID   string `json:"id"`
	Op   OpType `json:"op"`
	KbID string `json:"kb_id"`

	// ApplyChanges: ordered change list
	Changes []ChangeWire `json:"changes,omitempty"`

	// ReplaceAxioms: full axiom set, canonical text form
	Axioms []string `json:"axioms,omitempty"`
}

// Response carries the outcome of one request. Exactly one of Digest or
// Error is set.
type Response struct {
	ID     string `json:"id"`
	Digest string `json:"digest,omitempty"`
	Error  string `json:"error,omitempty"`
}
