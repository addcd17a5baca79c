package kb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChange(t *testing.T) {
	add, err := ParseChange("+ SubClassOf(Dog Animal)")
	require.NoError(t, err)
	assert.Equal(t, OpAdd, add.Op)
	assert.True(t, add.Axiom.Equal(New(SubClassOf, "Dog", "Animal")))

	rem, err := ParseChange("- ClassAssertion(Dog rex)")
	require.NoError(t, err)
	assert.Equal(t, OpRemove, rem.Op)

	_, err = ParseChange("SubClassOf(Dog Animal)")
	assert.Error(t, err, "change without +/- prefix should be rejected")

	_, err = ParseChange("+")
	assert.Error(t, err)
}

func TestReadChangesPreservesOrder(t *testing.T) {
	input := strings.Join([]string{
		"# remove then re-add the same axiom",
		"- SubClassOf(Dog Animal)",
		"",
		"+ SubClassOf(Dog Animal)",
		"+ ClassAssertion(Dog rex)",
	}, "\n")

	changes, err := ReadChanges(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, changes, 3)

	assert.Equal(t, OpRemove, changes[0].Op)
	assert.Equal(t, OpAdd, changes[1].Op)
	assert.True(t, changes[0].Axiom.Equal(changes[1].Axiom))
	assert.Equal(t, OpAdd, changes[2].Op)
}

func TestReadAxiomsSkipsCommentsAndBlanks(t *testing.T) {
	input := strings.Join([]string{
		"# ontology fragment",
		"SubClassOf(Dog Animal)",
		"",
		"   ",
		"ClassAssertion(Dog rex)",
	}, "\n")

	axioms, err := ReadAxioms(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, axioms, 2)
}

func TestReadAxiomsReportsLineNumber(t *testing.T) {
	input := "SubClassOf(Dog Animal)\nnot an axiom\n"
	_, err := ReadAxioms(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
