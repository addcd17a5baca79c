package kb

import (
	"math/rand"
	"testing"
)

func sampleAxioms() []Axiom {
	return []Axiom{
		New(SubClassOf, "Dog", "Animal"),
		New(SubClassOf, "Cat", "Animal"),
		New(ClassAssertion, "Dog", "rex"),
		New(PropertyAssertion, "owns", "alice", "rex"),
		New(EquivalentClasses, "Person", "Human"),
	}
}

func TestDigestDeterministic(t *testing.T) {
	axioms := sampleAxioms()
	if DigestOf(axioms) != DigestOf(axioms) {
		t.Fatal("same axiom set produced different digests")
	}
}

func TestDigestOrderIndependent(t *testing.T) {
	axioms := sampleAxioms()
	want := DigestOf(axioms)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := make([]Axiom, len(axioms))
		copy(shuffled, axioms)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := DigestOf(shuffled); got != want {
			t.Fatalf("permutation %d digested to %s, want %s", i, got.Hex(), want.Hex())
		}
	}
}

func TestDigestCollapsesDuplicates(t *testing.T) {
	axioms := sampleAxioms()
	withDupes := append(append([]Axiom{}, axioms...), axioms[0], axioms[2], axioms[2])
	if DigestOf(withDupes) != DigestOf(axioms) {
		t.Fatal("duplicate axioms should not change the digest")
	}
}

func TestDigestDistinguishesSets(t *testing.T) {
	base := sampleAxioms()
	baseDigest := DigestOf(base)

	variants := map[string][]Axiom{
		"empty":         {},
		"one removed":   base[1:],
		"one added":     append(append([]Axiom{}, base...), New(SubClassOf, "Fish", "Animal")),
		"term changed":  append(base[1:], New(SubClassOf, "Dog", "Mammal")),
		"kind changed":  append(base[1:], New(EquivalentClasses, "Dog", "Animal")),
		"terms rejoined": {New(SubClassOf, "Do", "gAnimal")},
	}

	for name, axioms := range variants {
		if DigestOf(axioms) == baseDigest {
			t.Errorf("%s: different set produced the same digest", name)
		}
	}
}

func TestDigestFieldSeparation(t *testing.T) {
	// Term boundaries must be part of the hash input.
	a := DigestOf([]Axiom{New(SubClassOf, "ab", "c")})
	b := DigestOf([]Axiom{New(SubClassOf, "a", "bc")})
	if a == b {
		t.Fatal("term boundary shift should change the digest")
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	d := DigestOf(sampleAxioms())
	parsed, err := ParseDigest(d.Hex())
	if err != nil {
		t.Fatalf("ParseDigest failed: %v", err)
	}
	if parsed != d {
		t.Fatal("ParseDigest did not invert Hex")
	}
}

func TestParseDigestRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "zz", "abcd", "not-hex-at-all"} {
		if _, err := ParseDigest(s); err == nil {
			t.Errorf("ParseDigest(%q) should have failed", s)
		}
	}
}

func TestDigestShort(t *testing.T) {
	d := DigestOf(sampleAxioms())
	if len(d.Short()) != 8 {
		t.Fatalf("Short() = %q, want 8 hex chars", d.Short())
	}
}
