package reasoner

import (
	"context"
	"sync"

	"github.com/teranos/kbsync/kb"
)

// Call is the future half of one asynchronous service request. It resolves
// exactly once — to a digest or to an error — and any number of waiters
// observe the same resolution.
type Call struct {
	done   chan struct{}
	once   sync.Once
	digest kb.Digest
	err    error
}

// NewCall creates an unresolved call. Service implementations (and test
// fakes) resolve it with Complete or Fail.
func NewCall() *Call {
	return &Call{done: make(chan struct{})}
}

// Resolved returns a call that already carries a digest.
func Resolved(d kb.Digest) *Call {
	c := NewCall()
	c.Complete(d)
	return c
}

// Failed returns a call that already carries an error.
func Failed(err error) *Call {
	c := NewCall()
	c.Fail(err)
	return c
}

// Complete resolves the call with a digest. Later resolutions are ignored.
func (c *Call) Complete(d kb.Digest) {
	c.once.Do(func() {
		c.digest = d
		close(c.done)
	})
}

// Fail resolves the call with an error. Later resolutions are ignored.
func (c *Call) Fail(err error) {
	c.once.Do(func() {
		c.err = err
		close(c.done)
	})
}

// Await blocks until the call resolves or ctx ends. Context cancellation
// returns ctx.Err() and leaves the call unresolved for any other waiter —
// the request itself is not withdrawn from the service.
func (c *Call) Await(ctx context.Context) (kb.Digest, error) {
	select {
	case <-c.done:
		return c.digest, c.err
	case <-ctx.Done():
		return kb.Digest{}, ctx.Err()
	}
}
