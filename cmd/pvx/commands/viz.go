package commands

import (
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PVX/composite"
	"github.com/teranos/PVX/config"
	"github.com/teranos/PVX/errors"
	"github.com/teranos/PVX/graph"
	"github.com/teranos/PVX/logger"
	"github.com/teranos/PVX/prime"
	"github.com/teranos/PVX/render"
	"github.com/teranos/PVX/server"
	"github.com/teranos/PVX/sym"
	"github.com/teranos/PVX/vowel"
)

// VizCmd represents the viz command
var VizCmd = &cobra.Command{
	Use:   "viz [limit]",
	Short: sym.Viz + " Render the prime/composite graph",
	Long: sym.Viz + ` viz — Visualize prime and composite relationships

Static mode writes a self-contained HTML file with the embedded graph.
Interactive mode starts a WebSocket server that rebuilds and rebroadcasts
the graph as clients change the limit or the config file changes.

The mode comes from --mode, or viz.mode in configuration when unset.

Examples:
  pvx viz                       # Static HTML at the configured path
  pvx viz 50 -o primes.html     # Static HTML for limit 50
  pvx viz --mode interactive    # Live server at the configured port`,
	Args: cobra.MaximumNArgs(1),
	RunE: runViz,
}

var (
	vizMode      string
	vizOutput    string
	vizNoBrowser bool
)

func init() {
	VizCmd.Flags().StringVar(&vizMode, "mode", "", "Visualization mode: static or interactive (default from config)")
	VizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file for static mode (default from config)")
	VizCmd.Flags().BoolVar(&vizNoBrowser, "no-browser", false, "Disable automatic browser opening")
}

func runViz(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	limit := cfg.GetGenLimit()
	if len(args) > 0 {
		limit, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.Newf("invalid limit %q: expected an integer", args[0])
		}
	}

	mode := vizMode
	if mode == "" {
		mode = cfg.GetVizMode()
	}

	switch mode {
	case config.VizModeStatic:
		return runVizStatic(cfg, limit)
	case config.VizModeInteractive:
		verbosity, _ := cmd.Flags().GetCount("verbose")
		return runVizInteractive(limit, verbosity)
	default:
		return errors.Newf("unknown viz mode %q (expected %q or %q)",
			mode, config.VizModeStatic, config.VizModeInteractive)
	}
}

func runVizStatic(cfg *config.Config, limit int64) error {
	primes, err := prime.Sieve(limit)
	if err != nil {
		return errors.Wrapf(err, "cannot build graph for limit %d", limit)
	}

	assignment := vowel.Assign(primes)
	composites := composite.Generate(assignment)
	g := graphBuilder().Build(assignment, composites, limit)

	outPath := vizOutput
	if outPath == "" {
		outPath = cfg.GetVizFile()
	}

	if err := render.WriteHTML(g, outPath); err != nil {
		return err
	}

	logger.VizInfow("Wrote static graph",
		"file", outPath,
		"limit", limit,
		"nodes", len(g.Nodes),
		"links", len(g.Links),
	)
	pterm.Success.Printf("Graph written to %s (%d nodes, %d links)\n",
		outPath, len(g.Nodes), len(g.Links))
	return nil
}

func runVizInteractive(limit int64, verbosity int) error {
	// Interactive server defaults to Info level output
	if verbosity == 0 {
		verbosity = 1
	}

	serverPort := config.GetServerPort()

	printStartupBanner(verbosity, limit)

	srv := server.New(limit, verbosity, logger.Logger)

	// Watch the project config so gen.limit edits update the live graph
	if configPath := config.FindProjectConfig(); configPath != "" {
		if err := srv.WatchConfig(configPath); err != nil {
			logger.Warnw("Config watching disabled", "error", err)
		}
	}

	// The callback reports the port actually bound, which may differ from
	// the configured one when it is already taken
	onReady := func(url string) {
		pterm.Info.Printf("Serving at %s\n", url)
		if !vizNoBrowser {
			openBrowser(url)
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(serverPort, onReady)
	}()

	// Wait for shutdown signal (Ctrl+C)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return errors.Wrap(err, "server failed to start")
	case <-sigChan:
		// First Ctrl+C - graceful shutdown
		pterm.Info.Println("\nShutting down gracefully (press Ctrl+C again to force)...")

		shutdownDone := make(chan error, 1)
		go func() {
			shutdownDone <- srv.Stop()
		}()

		select {
		case err := <-shutdownDone:
			if err != nil {
				return errors.Wrap(err, "shutdown error")
			}
			pterm.Success.Println("Server stopped cleanly")
			return nil
		case <-sigChan:
			// Second Ctrl+C - force immediate exit
			pterm.Warning.Println("\nForce shutdown - exiting immediately")
			os.Exit(1)
			return nil // unreachable
		}
	}
}

func graphBuilder() *graph.Builder {
	return graph.NewBuilder(0, logger.Logger)
}

// openBrowser attempts to open the URL in the default browser
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "darwin":
		err = exec.Command("open", url).Start()
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("cmd", "/c", "start", url).Start()
	}
	// Silently ignore errors - user can manually open the URL
	_ = err
}
