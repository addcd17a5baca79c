package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/kbsync/errors"
	"github.com/teranos/kbsync/kb"
)

// DigestCmd computes the digest of an axiom file
var DigestCmd = &cobra.Command{
	Use:   "digest <axiom-file>",
	Short: "Compute the content digest of an axiom file",
	Long: `Compute the deterministic SHA-256 digest of an axiom file.

The file holds one axiom per line in canonical form, e.g.:

  SubClassOf(Dog Animal)
  ClassAssertion(Dog rex)

Line order does not matter — set-equal files always digest identically.`,
	Args: cobra.ExactArgs(1),
	RunE: runDigest,
}

func runDigest(cmd *cobra.Command, args []string) error {
	axioms, err := kb.ReadAxiomFile(args[0])
	if err != nil {
		return errors.Wrap(err, "failed to read axioms")
	}

	digest := kb.DigestOf(axioms)
	pterm.Printf("%s  %s (%d axioms)\n", digest.Hex(), args[0], len(axioms))
	return nil
}
