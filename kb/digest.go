package kb

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/teranos/kbsync/errors"
)

// Digest is a deterministic SHA-256 fingerprint of an axiom set. It is the
// cheap equality oracle the synchronization protocol compares states with:
// comparable by == only, no ordering.
type Digest [32]byte

// DigestOf computes the digest of an axiom set. Input order does not
// matter and duplicates collapse: the axioms are deduplicated by their
// canonical key and sorted into the canonical total order before hashing,
// so set-equal inputs always digest identically.
//
// Each axiom is written with a domain separator and null-delimited terms
// so that, for example, SubClassOf(a b) and SubClassOf(ab) cannot collide.
func DigestOf(axioms []Axiom) Digest {
	seen := make(map[string]struct{}, len(axioms))
	ordered := make([]Axiom, 0, len(axioms))
	for _, ax := range axioms {
		k := ax.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		ordered = append(ordered, ax)
	}
	SortAxioms(ordered)

	h := sha256.New()
	for _, ax := range ordered {
		h.Write([]byte("ax:"))
		h.Write([]byte(ax.Kind))
		for _, t := range ax.Terms {
			h.Write([]byte{0})
			h.Write([]byte(t))
		}
		h.Write([]byte{'\n'})
	}

	var out Digest
	h.Sum(out[:0])
	return out
}

// Hex returns the full lowercase hex encoding of the digest.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first eight hex characters, for log output.
func (d Digest) Short() string {
	return d.Hex()[:8]
}

func (d Digest) String() string {
	return d.Hex()
}

// ParseDigest decodes a 64-character hex digest produced by Hex.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, errors.Wrapf(err, "malformed digest %q", s)
	}
	if len(raw) != len(d) {
		return d, errors.Newf("malformed digest %q: want %d hex bytes, got %d", s, len(d), len(raw))
	}
	copy(d[:], raw)
	return d, nil
}
