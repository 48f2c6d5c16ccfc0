package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/expressivo"
)

// result is one line of text output or one YAML document entry. Expressions
// are encoded in canonical form through their MarshalText method.
type result struct {
	Name       string           `yaml:"name,omitempty"`
	Expr       *expressivo.Expr `yaml:"expr,omitempty"`
	Source     string           `yaml:"source,omitempty"`
	Vars       []string         `yaml:"vars,omitempty"`
	Wrt        string           `yaml:"wrt,omitempty"`
	Order      int              `yaml:"order,omitempty"`
	Derivative *expressivo.Expr `yaml:"derivative,omitempty"`
	Size       int              `yaml:"size,omitempty"`
	Depth      int              `yaml:"depth,omitempty"`
	Error      string           `yaml:"error,omitempty"`
}

// format writes e in canonical or spaced form.
func (a *app) format(e *expressivo.Expr) string {
	if a.cfg.Spaced {
		return fmt.Sprintf("%+v", e)
	}
	return e.String()
}

// write emits results in the configured output format.
func (a *app) write(w io.Writer, results []result) error {
	switch a.cfg.Output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return errors.Wrap(enc.Close(), "encoding yaml")
	default:
		var b strings.Builder
		for _, r := range results {
			a.text(&b, r)
		}
		_, err := io.WriteString(w, b.String())
		return errors.Wrap(err, "writing output")
	}
}

func (a *app) text(b *strings.Builder, r result) {
	if r.Name != "" {
		b.WriteString(r.Name)
		b.WriteString(": ")
	}
	switch {
	case r.Error != "":
		b.WriteString("error: ")
		b.WriteString(r.Error)
	case r.Derivative != nil:
		b.WriteString(a.format(r.Derivative))
	case r.Expr != nil:
		b.WriteString(a.format(r.Expr))
	}
	if len(r.Vars) > 0 {
		b.WriteString(" vars=")
		b.WriteString(strings.Join(r.Vars, ","))
	}
	if r.Size > 0 {
		fmt.Fprintf(b, " size=%d depth=%d", r.Size, r.Depth)
	}
	b.WriteByte('\n')
}
