package kb

import (
	"testing"
)

func TestAxiomEqual(t *testing.T) {
	a := New(SubClassOf, "Dog", "Animal")
	b := New(SubClassOf, "Dog", "Animal")
	c := New(SubClassOf, "Cat", "Animal")

	if !a.Equal(b) {
		t.Fatal("structurally identical axioms should be equal")
	}
	if a.Equal(c) {
		t.Fatal("axioms with different terms should not be equal")
	}
	if a.Equal(New(ClassAssertion, "Dog", "Animal")) {
		t.Fatal("axioms with different kinds should not be equal")
	}
	if a.Equal(New(SubClassOf, "Dog")) {
		t.Fatal("axioms with different arities should not be equal")
	}
}

func TestAxiomCompareTotalOrder(t *testing.T) {
	ordered := []Axiom{
		New(ClassAssertion, "Dog", "rex"),
		New(SubClassOf, "Cat", "Animal"),
		New(SubClassOf, "Dog"),
		New(SubClassOf, "Dog", "Animal"),
		New(SubClassOf, "Dog", "Mammal"),
	}

	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Compare(ordered[j])
			switch {
			case i < j && got >= 0:
				t.Errorf("Compare(%v, %v) = %d, want < 0", ordered[i], ordered[j], got)
			case i > j && got <= 0:
				t.Errorf("Compare(%v, %v) = %d, want > 0", ordered[i], ordered[j], got)
			case i == j && got != 0:
				t.Errorf("Compare(%v, %v) = %d, want 0", ordered[i], ordered[j], got)
			}
		}
	}
}

func TestAxiomKeyRoundTrip(t *testing.T) {
	axioms := []Axiom{
		New(SubClassOf, "Dog", "Animal"),
		New(ClassAssertion, "Dog", "rex"),
		New(EquivalentClasses, "Person", "Human"),
		New(SameIndividual, "a", "b", "c"),
	}

	for _, ax := range axioms {
		parsed, err := Parse(ax.Key())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", ax.Key(), err)
		}
		if !parsed.Equal(ax) {
			t.Errorf("round trip changed axiom: %v -> %v", ax, parsed)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	malformed := []string{
		"",
		"SubClassOf",
		"SubClassOf()",
		"(Dog Animal)",
		"SubClassOf(Dog Animal",
		"SubClassOf(Dog (Animal))",
	}

	for _, s := range malformed {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should have failed", s)
		}
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	ax, err := Parse("  SubClassOf(Dog  Animal) ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !ax.Equal(New(SubClassOf, "Dog", "Animal")) {
		t.Errorf("got %v", ax)
	}
}

func TestNewCopiesTerms(t *testing.T) {
	terms := []string{"Dog", "Animal"}
	ax := New(SubClassOf, terms...)
	terms[0] = "Cat"
	if ax.Terms[0] != "Dog" {
		t.Fatal("New should copy terms, not alias caller memory")
	}
}
