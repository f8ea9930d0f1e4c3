package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/PVX/config"
	"github.com/teranos/PVX/display"
	"github.com/teranos/PVX/errors"
	"github.com/teranos/PVX/logger"
	"github.com/teranos/PVX/prime"
	"github.com/teranos/PVX/sym"
)

// FactorCmd represents the factor command
var FactorCmd = &cobra.Command{
	Use:   "factor [n]",
	Short: sym.Factor + " Factorize an integer into prime powers",
	Long: sym.Factor + ` factor — Prime factorization

Decomposes an integer into its prime-power components by trial division.
The target comes from the argument, or factor.target in configuration
when omitted.

Examples:
  pvx factor 360           # 360 = 2^3 * 3^2 * 5
  pvx factor 97            # 97 is prime
  pvx factor 360 --json    # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFactor,
}

func init() {
	FactorCmd.Flags().Bool("json", false, "Output results as JSON")
}

type factorOutput struct {
	Target  int64          `json:"target"`
	Factors []prime.Factor `json:"factors"`
}

func runFactor(cmd *cobra.Command, args []string) error {
	target, err := resolveTarget(args)
	if err != nil {
		return err
	}

	factors, err := prime.Factorize(target)
	if err != nil {
		return errors.Wrapf(err, "cannot factorize %d", target)
	}

	logger.FactorInfow("Factorized target",
		"target", target,
		"factors", len(factors),
	)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(factorOutput{Target: target, Factors: factors})
	}

	fmt.Printf("%s %d = %s\n", sym.Factor, target, formatFactorization(factors))
	if len(factors) == 1 && factors[0].Exponent == 1 {
		fmt.Printf("  %d is prime\n", target)
	}
	return nil
}

// resolveTarget reads the target from the argument, falling back to config
func resolveTarget(args []string) (int64, error) {
	if len(args) > 0 {
		target, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, errors.Newf("invalid target %q: expected an integer", args[0])
		}
		return target, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return 0, errors.Wrap(err, "failed to load config")
	}
	if cfg.Factor.Target == 0 {
		return 0, errors.New("no target given: pass an integer or set factor.target in config")
	}
	return cfg.Factor.Target, nil
}

// formatFactorization renders factors as "2^3 * 3^2 * 5"
func formatFactorization(factors []prime.Factor) string {
	parts := make([]string, 0, len(factors))
	for _, f := range factors {
		if f.Exponent == 1 {
			parts = append(parts, strconv.FormatInt(f.Prime, 10))
		} else {
			parts = append(parts, fmt.Sprintf("%d^%d", f.Prime, f.Exponent))
		}
	}
	return strings.Join(parts, " * ")
}
