package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/expressivo"
)

type parseFlags struct {
	in    string
	lines bool
	vars  bool
}

func newParseCmd(a *app) *cobra.Command {
	var f parseFlags
	cmd := &cobra.Command{
		Use:   "parse [expr...]",
		Short: "Print expressions in canonical form",
		Long: `Parses each expression and prints it in canonical form, which parses
back to the same expression. Reads stdin when no expressions are given.

Examples:
  expressivo parse "1 + x * y"
  expressivo parse --spaced "(1+x)*(x*1)"
  expressivo parse -n --in exprs.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, f, args)
		},
	}
	cmd.Flags().StringVar(&f.in, "in", "", "input file, - for stdin (default stdin if no args given)")
	cmd.Flags().BoolVarP(&f.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	cmd.Flags().BoolVar(&f.vars, "vars", false, "list the variables of each expression")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, f parseFlags, args []string) error {
	srcs, closer, err := sources(cmd.InOrStdin(), f.in, f.lines, args)
	if err != nil {
		return err
	}
	defer a.closeInput(closer)
	var results []result
	for _, s := range srcs {
		err := s.each(a.cfg.parseOptions(), func(e *expressivo.Expr) error {
			a.log.Debug("parsed", slog.String("source", s.name), slog.Int("size", e.Size()))
			r := result{Expr: e}
			if f.vars {
				r.Vars = e.Vars()
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
