package commands

import (
	"fmt"

	"github.com/teranos/PVX/logger"
	"github.com/teranos/PVX/sym"
	"github.com/teranos/PVX/version"
)

// printStartupBanner prints the user-friendly startup message
func printStartupBanner(verbosity int, limit int64) {
	// ANSI escape codes
	cyan := "\033[36m"
	green := "\033[32m"
	yellow := "\033[33m"
	blue := "\033[34m"
	magenta := "\033[35m"
	bold := "\033[1m"
	reset := "\033[0m"

	versionInfo := version.Get()

	fmt.Printf("\n%s%s", cyan, bold)
	fmt.Printf("   ╔═══════════════════════════════════════════╗\n")
	fmt.Printf("   ║                                           ║\n")
	fmt.Printf("   ║        ██████  ██    ██ ██   ██           ║\n")
	fmt.Printf("   ║        ██   ██ ██    ██  ██ ██            ║\n")
	fmt.Printf("   ║        ██████  ██    ██   ███             ║\n")
	fmt.Printf("   ║        ██       ██  ██   ██ ██            ║\n")
	fmt.Printf("   ║        ██        ████   ██   ██           ║\n")
	fmt.Printf("   ║                                           ║\n")
	fmt.Printf("   ║   %s%s%s Primes  %s%s%s Factor  %s%s%s Graph           ║\n",
		green, sym.Gen, reset+cyan+bold,
		yellow, sym.Factor, reset+cyan+bold,
		magenta, sym.Viz, reset+cyan+bold)
	fmt.Printf("   ║                                           ║\n")
	fmt.Printf("   ╚═══════════════════════════════════════════╝%s\n\n", reset)

	fmt.Printf("%s%s┌─ PVX Info ──────────────────────────────────────────┐%s\n", green, bold, reset)
	fmt.Printf("%s│%s Version:   %s (commit %s)\n", green, reset, versionInfo.Version, versionInfo.Short())
	fmt.Printf("%s│%s Built:     %s\n", green, reset, versionInfo.BuildTime)
	fmt.Printf("%s│%s Verbosity: %s\n", green, reset, logger.LevelName(verbosity))
	fmt.Printf("%s│%s Limit:     %d\n", green, reset, limit)
	fmt.Printf("%s└─────────────────────────────────────────────────────┘%s\n", green, reset)

	fmt.Printf("\n%s%s✨ Change the limit in the browser to see live graph updates%s\n", yellow, bold, reset)
	fmt.Printf("%s💡 Press Ctrl+C to stop%s\n\n", blue, reset)
}
