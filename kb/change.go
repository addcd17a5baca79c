package kb

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/teranos/kbsync/errors"
)

// Op distinguishes the two kinds of incremental change.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// Change is one incremental edit to an axiom set. Changes are applied in
// list order — a later change may depend on an earlier one (remove then
// re-add the same axiom is meaningful).
type Change struct {
	Op    Op
	Axiom Axiom
}

// Add builds an addition change.
func Add(ax Axiom) Change {
	return Change{Op: OpAdd, Axiom: ax}
}

// Remove builds a removal change.
func Remove(ax Axiom) Change {
	return Change{Op: OpRemove, Axiom: ax}
}

func (c Change) String() string {
	if c.Op == OpRemove {
		return "- " + c.Axiom.Key()
	}
	return "+ " + c.Axiom.Key()
}

// ParseChange reads one change line: "+ Axiom(...)" or "- Axiom(...)".
func ParseChange(s string) (Change, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Change{}, errors.Newf("malformed change %q: want '+ Axiom(...)' or '- Axiom(...)'", s)
	}
	var op Op
	switch s[0] {
	case '+':
		op = OpAdd
	case '-':
		op = OpRemove
	default:
		return Change{}, errors.Newf("malformed change %q: must start with '+' or '-'", s)
	}
	ax, err := Parse(s[1:])
	if err != nil {
		return Change{}, err
	}
	return Change{Op: op, Axiom: ax}, nil
}

// ReadAxioms parses one axiom per line. Blank lines and lines starting
// with '#' are skipped.
func ReadAxioms(r io.Reader) ([]Axiom, error) {
	var axioms []Axiom
	if err := scanLines(r, func(line string) error {
		ax, err := Parse(line)
		if err != nil {
			return err
		}
		axioms = append(axioms, ax)
		return nil
	}); err != nil {
		return nil, err
	}
	return axioms, nil
}

// ReadChanges parses one change per line, preserving list order.
func ReadChanges(r io.Reader) ([]Change, error) {
	var changes []Change
	if err := scanLines(r, func(line string) error {
		ch, err := ParseChange(line)
		if err != nil {
			return err
		}
		changes = append(changes, ch)
		return nil
	}); err != nil {
		return nil, err
	}
	return changes, nil
}

// ReadAxiomFile loads an axiom file from disk.
func ReadAxiomFile(path string) ([]Axiom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open axiom file %s", path)
	}
	defer f.Close()
	return ReadAxioms(f)
}

// ReadChangeFile loads a change file from disk.
func ReadChangeFile(path string) ([]Change, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open change file %s", path)
	}
	defer f.Close()
	return ReadChanges(f)
}

func scanLines(r io.Reader, visit func(string) error) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := visit(line); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	return sc.Err()
}
