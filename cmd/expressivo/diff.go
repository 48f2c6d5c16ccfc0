package main

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/expressivo"
)

type diffFlags struct {
	in    string
	lines bool
	wrt   string
	order int
	stats bool
}

func newDiffCmd(a *app) *cobra.Command {
	var f diffFlags
	cmd := &cobra.Command{
		Use:   "diff --wrt <var> [expr...]",
		Short: "Differentiate expressions",
		Long: `Differentiates each expression with respect to a variable using the sum
and product rules. Results are not simplified, so they grow with each order.

Examples:
  expressivo diff --wrt x "x*x"
  expressivo diff --wrt x --order 3 --stats "x*x*x"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDiff(cmd, f, args)
		},
	}
	cmd.Flags().StringVar(&f.in, "in", "", "input file, - for stdin (default stdin if no args given)")
	cmd.Flags().BoolVarP(&f.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	cmd.Flags().StringVarP(&f.wrt, "wrt", "x", "", "variable to differentiate with respect to")
	cmd.Flags().IntVar(&f.order, "order", 1, "order of the derivative")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "report node count and depth of each derivative")
	cmd.MarkFlagRequired("wrt")
	return cmd
}

func (a *app) runDiff(cmd *cobra.Command, f diffFlags, args []string) error {
	if f.order < 0 {
		return errors.Errorf("order must not be negative, got %d", f.order)
	}
	srcs, closer, err := sources(cmd.InOrStdin(), f.in, f.lines, args)
	if err != nil {
		return err
	}
	defer a.closeInput(closer)
	var results []result
	for _, s := range srcs {
		err := s.each(a.cfg.parseOptions(), func(e *expressivo.Expr) error {
			d := e.DifferentiateN(f.wrt, f.order)
			a.log.Debug("differentiated",
				slog.String("source", s.name),
				slog.String("wrt", f.wrt),
				slog.Int("order", f.order),
				slog.Int("size", d.Size()),
			)
			r := result{Expr: e, Wrt: f.wrt, Order: f.order, Derivative: d}
			if f.stats {
				r.Size, r.Depth = d.Size(), d.Depth()
			}
			results = append(results, r)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return a.write(cmd.OutOrStdout(), results)
}
