package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/expressivo"
)

// app is the state shared by all commands. It is filled in by the root
// command's pre-run hook.
type app struct {
	cfgFile  string
	verbose  bool
	spaced   bool
	maxDepth int
	output   string

	cfg Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "expressivo",
		Short: "Parse and differentiate polynomial expressions",
		Long: `expressivo works with expressions built from nonnegative numbers,
variables made of letters, + and *.

Examples:
  expressivo parse "(1 + x) * (x * 1)"
  expressivo diff --wrt x "x*x + 3*x"
  expressivo batch -f jobs.yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "TOML config file (default $"+configEnv+")")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages to stderr")
	root.PersistentFlags().BoolVar(&a.spaced, "spaced", false, "print spaces around operators")
	root.PersistentFlags().IntVar(&a.maxDepth, "max-depth", expressivo.DefaultMaxDepth, "maximum parenthesis nesting, 0 for no limit")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "output format, text or yaml")

	root.AddCommand(newParseCmd(a), newDiffCmd(a), newBatchCmd(a))
	return root
}

// setup loads the config file, applies flags that were set explicitly, and
// creates the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, path, err := loadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("spaced") {
		cfg.Spaced = a.spaced
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	lvl, _ := cfg.level()
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	if path != "" {
		a.log.Debug("loaded config", slog.String("path", path))
	}
	a.log.Debug("settings",
		slog.Bool("spaced", cfg.Spaced),
		slog.Int("max_depth", cfg.MaxDepth),
		slog.String("output", cfg.Output),
	)
	return nil
}
