package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/PVX/composite"
	"github.com/teranos/PVX/config"
	"github.com/teranos/PVX/display"
	"github.com/teranos/PVX/errors"
	"github.com/teranos/PVX/logger"
	"github.com/teranos/PVX/prime"
	"github.com/teranos/PVX/sym"
	"github.com/teranos/PVX/vowel"
)

// GenCmd represents the gen command
var GenCmd = &cobra.Command{
	Use:   "gen [limit]",
	Short: sym.Gen + " Generate primes, vowel labels, and composites",
	Long: sym.Gen + ` gen — Generate primes up to a limit

Sieves all primes in [2, limit], assigns each a vowel label, and derives
composite values from every prime pair: sum, product, and both powers.

The limit comes from the argument, or gen.limit in configuration when
omitted (default 20).

Examples:
  pvx gen                  # Use configured limit
  pvx gen 50               # Primes up to 50
  pvx gen 50 --json        # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGen,
}

func init() {
	GenCmd.Flags().Bool("json", false, "Output results as JSON")
}

// genPrime is one labeled prime in JSON output
type genPrime struct {
	Prime int64  `json:"prime"`
	Label string `json:"label"`
}

// genComposite is one derived value in JSON output. Value is a decimal
// string since powers overflow int64 quickly.
type genComposite struct {
	Value    string   `json:"value"`
	Label    string   `json:"label"`
	Op       string   `json:"op"`
	Operands [2]int64 `json:"operands"`
}

type genOutput struct {
	Limit      int64          `json:"limit"`
	Primes     []genPrime     `json:"primes"`
	Composites []genComposite `json:"composites"`
}

func runGen(cmd *cobra.Command, args []string) error {
	limit, err := resolveLimit(args)
	if err != nil {
		return err
	}

	primes, err := prime.Sieve(limit)
	if err != nil {
		return errors.Wrapf(err, "cannot generate primes up to %d", limit)
	}

	assignment := vowel.Assign(primes)
	composites := composite.Generate(assignment)

	logger.GenInfow("Generated primes and composites",
		"limit", limit,
		"primes", len(primes),
		"composites", composites.Len(),
	)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(buildGenOutput(limit, assignment, composites))
	}

	printGenListing(limit, assignment, composites)
	return nil
}

// resolveLimit reads the limit from the argument, falling back to config
func resolveLimit(args []string) (int64, error) {
	if len(args) > 0 {
		limit, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, errors.Newf("invalid limit %q: expected an integer", args[0])
		}
		return limit, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return 0, errors.Wrap(err, "failed to load config")
	}
	return cfg.GetGenLimit(), nil
}

func buildGenOutput(limit int64, assignment *vowel.Assignment, composites *composite.Set) genOutput {
	out := genOutput{
		Limit:      limit,
		Primes:     make([]genPrime, 0, assignment.Len()),
		Composites: make([]genComposite, 0, composites.Len()),
	}

	for _, p := range assignment.Primes() {
		label, _ := assignment.Label(p)
		out.Primes = append(out.Primes, genPrime{Prime: p, Label: label})
	}

	for _, c := range composites.All() {
		out.Composites = append(out.Composites, genComposite{
			Value:    c.Value.String(),
			Label:    c.Label,
			Op:       string(c.Op),
			Operands: c.Operands,
		})
	}

	return out
}

func printGenListing(limit int64, assignment *vowel.Assignment, composites *composite.Set) {
	pterm.DefaultSection.Printf("%s Primes up to %d", sym.Gen, limit)

	tableData := pterm.TableData{{"Prime", "Label"}}
	for _, p := range assignment.Primes() {
		label, _ := assignment.Label(p)
		tableData = append(tableData, []string{strconv.FormatInt(p, 10), label})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		// Fall back to plain output if the terminal rejects the table
		for _, row := range tableData[1:] {
			fmt.Printf("  %s  %s\n", row[0], row[1])
		}
	}

	pterm.DefaultSection.Printf("Composites (%d)", composites.Len())
	for _, c := range composites.All() {
		fmt.Printf("  %d %s %d = %s  (%s)\n",
			c.Operands[0], sym.OpSymbol(string(c.Op)), c.Operands[1], c.Value.String(), c.Label)
	}
}
