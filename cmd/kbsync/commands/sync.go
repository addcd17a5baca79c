package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/kbsync/config"
	"github.com/teranos/kbsync/errors"
	"github.com/teranos/kbsync/kb"
	"github.com/teranos/kbsync/logger"
	"github.com/teranos/kbsync/reasoner"
	"github.com/teranos/kbsync/sync"
)

// SyncCmd synchronizes a reasoning service with a local axiom file
var SyncCmd = &cobra.Command{
	Use:   "sync <axiom-file>",
	Short: "Synchronize a reasoning service with an axiom file",
	Long: `Bring a remote reasoning service into agreement with the axiom file.

The expected digest is computed locally and compared against the service's
current digest. When they already agree nothing is transferred; when the
service sits at a known base state (--base-digest) the pending change list
(--changes) is flushed; otherwise the full axiom set replaces the remote
state.

A change file holds one change per line: "+ Axiom(...)" or "- Axiom(...)".`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

var (
	syncKb         string
	syncURL        string
	syncProject    string
	syncBaseDigest string
	syncChanges    string
	syncTimeout    time.Duration
)

func init() {
	SyncCmd.Flags().StringVar(&syncKb, "kb", "", "Knowledge base identifier (required)")
	SyncCmd.Flags().StringVar(&syncURL, "url", "", "Reasoning service websocket URL (overrides config)")
	SyncCmd.Flags().StringVar(&syncProject, "project", "cli", "Project identifier for the log trail")
	SyncCmd.Flags().StringVar(&syncBaseDigest, "base-digest", "", "Digest the service was last observed at")
	SyncCmd.Flags().StringVar(&syncChanges, "changes", "", "Change file to flush when the service is at the base digest")
	SyncCmd.Flags().DurationVar(&syncTimeout, "timeout", 30*time.Second, "Overall synchronization timeout")
	SyncCmd.MarkFlagRequired("kb")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	url := syncURL
	if url == "" {
		url = cfg.Service.URL
	}

	expected, err := kb.ReadAxiomFile(args[0])
	if err != nil {
		return errors.Wrap(err, "failed to read axioms")
	}

	base, err := loadBase()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()

	dialCtx, dialCancel := context.WithTimeout(ctx, time.Duration(cfg.Service.DialTimeoutSeconds)*time.Second)
	defer dialCancel()
	client, err := reasoner.Dial(dialCtx, url, logger.Logger)
	if err != nil {
		return err
	}
	defer client.Close()

	task := sync.NewTask(syncProject, kb.ID(syncKb), client, base, expected, logger.Logger)
	outcome := task.Run(ctx)

	digest, ok := outcome.Digest()
	if !ok {
		pterm.Error.Println("Synchronization did not complete — reasoner state unknown")
		return errors.New("no synchronization outcome")
	}

	if digest == task.ExpectedDigest() {
		pterm.Success.Printf("Reasoner in sync at %s\n", digest.Hex())
	} else {
		pterm.Warning.Printf("Reasoner diverged: expected %s, got %s\n",
			task.ExpectedDigest().Hex(), digest.Hex())
	}
	return nil
}

// loadBase assembles the optional base hypothesis from flags. A change
// file without a base digest is meaningless and rejected.
func loadBase() (*sync.Base, error) {
	if syncBaseDigest == "" {
		if syncChanges != "" {
			return nil, errors.New("--changes requires --base-digest")
		}
		return nil, nil
	}

	digest, err := kb.ParseDigest(syncBaseDigest)
	if err != nil {
		return nil, err
	}

	var pending []kb.Change
	if syncChanges != "" {
		pending, err = kb.ReadChangeFile(syncChanges)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read changes")
		}
	}

	return &sync.Base{Digest: digest, Pending: pending}, nil
}
