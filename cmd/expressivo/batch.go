package main

import (
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/expressivo"
)

// jobFile is the YAML document read by the batch command:
//
//	jobs:
//	  - name: cube
//	    expr: x*x*x
//	    wrt: x
//	    order: 2
//	  - name: canonical
//	    expr: (1 + x) * (x * 1)
type jobFile struct {
	Jobs []job `yaml:"jobs"`
}

// job is one expression to parse and, when wrt is set, differentiate.
type job struct {
	Name  string `yaml:"name"`
	Expr  string `yaml:"expr"`
	Wrt   string `yaml:"wrt"`
	Order *int   `yaml:"order"`
}

func newBatchCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch -f <jobs.yaml>",
		Short: "Run a YAML file of parse and differentiate jobs",
		Long: `Reads a YAML file with a list of jobs, each naming an expression and
optionally a variable and order to differentiate with respect to. Writes the
results as YAML. A job that fails is reported in its result, and the command
exits with an error after writing all results.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "job file, - for stdin")
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, file string) error {
	jobs, err := readJobs(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}
	a.log.Debug("read jobs", slog.String("file", file), slog.Int("count", len(jobs.Jobs)))
	results := make([]result, 0, len(jobs.Jobs))
	failed := 0
	for i, j := range jobs.Jobs {
		r := a.runJob(j)
		if r.Name == "" {
			r.Name = "job " + strconv.Itoa(i+1)
		}
		if r.Error != "" {
			failed++
			a.log.Warn("job failed", slog.String("name", r.Name), slog.String("error", r.Error))
		}
		results = append(results, r)
	}
	// Batch results are always YAML so that they line up with the input.
	out := *a
	out.cfg.Output = "yaml"
	if err := out.write(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

func (a *app) runJob(j job) result {
	r := result{Name: j.Name, Source: j.Expr, Wrt: j.Wrt}
	e, err := expressivo.ParseString(j.Expr, a.cfg.parseOptions()...)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Expr = e
	order := 1
	if j.Order != nil {
		order = *j.Order
	}
	switch {
	case order < 0:
		r.Error = "order must not be negative"
		return r
	case j.Wrt == "":
		if j.Order != nil {
			r.Error = "order given without wrt"
		}
		return r
	}
	r.Order = order
	r.Derivative = e.DifferentiateN(j.Wrt, order)
	r.Size, r.Depth = r.Derivative.Size(), r.Derivative.Depth()
	return r
}

func readJobs(stdin io.Reader, file string) (*jobFile, error) {
	in := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, errors.Wrap(err, "opening job file")
		}
		defer f.Close()
		in = f
	}
	var jobs jobFile
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(&jobs); err != nil {
		if errors.Is(err, io.EOF) {
			return &jobs, nil
		}
		return nil, errors.Wrapf(err, "decoding job file %s", file)
	}
	return &jobs, nil
}
