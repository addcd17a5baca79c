package sync

import "github.com/teranos/kbsync/kb"

// Verify reports whether the digest a mutating remote call returned
// matches the expected digest. Pure comparison — divergence is advisory,
// never a failure: the remote call genuinely happened, so the caller gets
// the actual post-call digest either way.
func Verify(expected, actual kb.Digest) bool {
	return expected == actual
}
