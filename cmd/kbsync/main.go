package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/kbsync/cmd/kbsync/commands"
	"github.com/teranos/kbsync/logger"
)

var jsonLogs bool

var rootCmd = &cobra.Command{
	Use:   "kbsync",
	Short: "kbsync - reasoner synchronization for knowledge bases",
	Long: `kbsync keeps a remote reasoning service in agreement with a local
axiom set, using content digests to avoid unnecessary full transfers.

Available commands:
  digest - Compute the digest of an axiom file
  sync   - Synchronize a reasoning service with an axiom file
  serve  - Run the reference reasoning host
  version - Show version information

Examples:
  kbsync digest ontology.axioms
  kbsync sync ontology.axioms --kb my-kb --url ws://localhost:8787/reason
  kbsync serve --listen :8787`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit JSON log output")

	rootCmd.AddCommand(commands.DigestCmd)
	rootCmd.AddCommand(commands.SyncCmd)
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
