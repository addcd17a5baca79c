package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/kbsync/config"
	"github.com/teranos/kbsync/logger"
	"github.com/teranos/kbsync/server"
	"github.com/teranos/kbsync/version"
)

// ServeCmd runs the reference reasoning host
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference reasoning host",
	Long: `Start an in-memory reasoning host serving the synchronization protocol
at /reason. State is per-process and lost on exit — the host exists for
development and integration testing, not durable storage.`,
	RunE: runServe,
}

var (
	serveListen string
	serveRPS    float64
	serveBurst  int
)

func init() {
	ServeCmd.Flags().StringVar(&serveListen, "listen", config.DefaultListenAddr, "Listen address (overrides config)")
	ServeCmd.Flags().Float64Var(&serveRPS, "rps", 0, "Per-connection request rate limit, 0 = unlimited (overrides config)")
	ServeCmd.Flags().IntVar(&serveBurst, "burst", 1, "Rate limiter burst size (overrides config)")
}

// serveSettings resolves listen/rate settings: config supplies the
// values, and a flag the user actually set wins. Distinguishing set
// from unset lets --rps 0 disable a config-set limit.
func serveSettings(cmd *cobra.Command, cfg *config.Config) (listen string, rps float64, burst int) {
	listen = cfg.Service.ListenAddr
	if cmd.Flags().Changed("listen") {
		listen = serveListen
	}
	rps = cfg.Service.RequestsPerSecond
	if cmd.Flags().Changed("rps") {
		rps = serveRPS
	}
	burst = cfg.Service.Burst
	if cmd.Flags().Changed("burst") {
		burst = serveBurst
	}
	return listen, rps, burst
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	listen, rps, burst := serveSettings(cmd, cfg)

	srv := server.New(server.NewStore(), logger.Logger, rps, burst)
	pterm.Info.Printf("%s listening on %s\n", version.Get().Short(), listen)
	return srv.ListenAndServe(listen)
}
