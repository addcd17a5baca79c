// Package kb defines the knowledge-base data model shared by the
// synchronization protocol and the reasoning host: logical axioms with a
// total order, ordered change records, and content digests.
//
// Axioms are value types. Two axioms are equal when their kind and terms
// match structurally; the total order (kind first, then terms) exists so
// axiom sets can be canonically sorted before digesting.
package kb

import (
	"sort"
	"strings"

	"github.com/teranos/kbsync/errors"
)

// ID identifies one knowledge base held by the reasoning service.
type ID string

// Kind names a logical axiom form.
type Kind string

// Axiom forms understood by the text format. The set is open — the protocol
// only compares and digests axioms, it never interprets them.
const (
	SubClassOf          Kind = "SubClassOf"
	EquivalentClasses   Kind = "EquivalentClasses"
	DisjointClasses     Kind = "DisjointClasses"
	ClassAssertion      Kind = "ClassAssertion"
	PropertyAssertion   Kind = "PropertyAssertion"
	SubPropertyOf       Kind = "SubPropertyOf"
	PropertyDomain      Kind = "PropertyDomain"
	PropertyRange       Kind = "PropertyRange"
	SameIndividual      Kind = "SameIndividual"
	DifferentIndividual Kind = "DifferentIndividuals"
)

// Axiom is one immutable logical statement: a kind plus positional terms.
// Construct with New; treat the Terms slice as read-only.
type Axiom struct {
	Kind  Kind
	Terms []string
}

// New builds an axiom from a kind and its terms. The terms are copied so
// the axiom does not alias caller memory.
func New(kind Kind, terms ...string) Axiom {
	copied := make([]string, len(terms))
	copy(copied, terms)
	return Axiom{Kind: kind, Terms: copied}
}

// Equal reports structural equality: same kind, same terms in order.
func (a Axiom) Equal(b Axiom) bool {
	if a.Kind != b.Kind || len(a.Terms) != len(b.Terms) {
		return false
	}
	for i := range a.Terms {
		if a.Terms[i] != b.Terms[i] {
			return false
		}
	}
	return true
}

// Compare imposes the canonical total order: by kind, then term-wise, with
// shorter term lists ordering first. Returns -1, 0, or 1.
func (a Axiom) Compare(b Axiom) int {
	if c := strings.Compare(string(a.Kind), string(b.Kind)); c != 0 {
		return c
	}
	for i := 0; i < len(a.Terms) && i < len(b.Terms); i++ {
		if c := strings.Compare(a.Terms[i], b.Terms[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a.Terms) < len(b.Terms):
		return -1
	case len(a.Terms) > len(b.Terms):
		return 1
	default:
		return 0
	}
}

// Key returns the canonical text form, e.g. "SubClassOf(Dog Animal)".
// It doubles as the wire representation; Parse inverts it.
func (a Axiom) Key() string {
	var sb strings.Builder
	sb.WriteString(string(a.Kind))
	sb.WriteByte('(')
	for i, t := range a.Terms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t)
	}
	sb.WriteByte(')')
	return sb.String()
}

func (a Axiom) String() string {
	return a.Key()
}

// Parse inverts Key: "Kind(term term ...)". Terms may not contain spaces
// or parentheses. An empty term list is rejected — a logical axiom always
// relates at least one entity.
func Parse(s string) (Axiom, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Axiom{}, errors.Newf("malformed axiom %q: want Kind(term ...)", s)
	}
	kind := s[:open]
	body := strings.TrimSpace(s[open+1 : len(s)-1])
	if body == "" {
		return Axiom{}, errors.Newf("malformed axiom %q: no terms", s)
	}
	terms := strings.Fields(body)
	for _, t := range terms {
		if strings.ContainsAny(t, "()") {
			return Axiom{}, errors.Newf("malformed axiom %q: nested parentheses", s)
		}
	}
	return Axiom{Kind: Kind(kind), Terms: terms}, nil
}

// SortAxioms sorts a slice of axioms into the canonical order in place.
func SortAxioms(axioms []Axiom) {
	sort.Slice(axioms, func(i, j int) bool {
		return axioms[i].Compare(axioms[j]) < 0
	})
}
