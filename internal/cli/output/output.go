// Package output renders CLI results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/qfault/circuit"
	"github.com/katalvlaran/qfault/fault"
	"github.com/katalvlaran/qfault/stabilizer"
	"github.com/katalvlaran/qfault/verdict"
)

// Analysis is the envelope of one `qfault analyze` run.
type Analysis struct {
	RunID     string          `json:"run_id" yaml:"run_id"`
	Source    string          `json:"source" yaml:"source"`
	NumQubits int             `json:"num_qubits" yaml:"num_qubits"`
	Ops       int             `json:"ops" yaml:"ops"`
	Partition fault.Partition `json:"partition" yaml:"partition"`
	Report    verdict.Report  `json:"report" yaml:"report"`
	Events    []fault.Event   `json:"events" yaml:"events"`
	Warnings  []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Check is the envelope of one `qfault check` run.
type Check struct {
	RunID     string             `json:"run_id" yaml:"run_id"`
	Source    string             `json:"source" yaml:"source"`
	NumQubits int                `json:"num_qubits" yaml:"num_qubits"`
	Preserved bool               `json:"preserved" yaml:"preserved"`
	Results   stabilizer.Results `json:"results" yaml:"results"`
	Outcomes  []bool             `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

// Gate is one row of the vocabulary listing.
type Gate struct {
	Name    string   `json:"name" yaml:"name"`
	Arity   int      `json:"arity" yaml:"arity"`
	Class   string   `json:"class" yaml:"class"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.New().String() }

// Renderer writes results in one format.
type Renderer struct {
	w      io.Writer
	format string
}

// NewRenderer returns a renderer for "table", "json" or "yaml".
func NewRenderer(w io.Writer, format string) *Renderer {
	return &Renderer{w: w, format: format}
}

// Analysis renders a, listing every event in JSON/YAML and the violations
// in table mode.
func (r *Renderer) Analysis(a Analysis) error {
	if a.Events == nil {
		a.Events = []fault.Event{}
	}
	switch r.format {
	case "json":
		return r.json(a)
	case "yaml":
		return r.yaml(a)
	}

	_, _ = fmt.Fprintf(r.w, "run %s  %s  qubits=%d ops=%d data=%v flag=%v\n",
		a.RunID, a.Source, a.NumQubits, a.Ops, a.Partition.Data, a.Partition.Flag)
	for _, w := range a.Warnings {
		_, _ = fmt.Fprintf(r.w, "warning: %s\n", w)
	}
	if len(a.Report.Violations) > 0 {
		t := r.table()
		t.AppendHeader(table.Row{"#", "Step", "Op", "Gate", "Qubit", "Pauli", "Residual", "Data", "Flag"})
		for i, e := range a.Report.Violations {
			t.AppendRow(table.Row{
				i + 1, e.Location.Step, e.Location.Index, e.Location.Gate, e.Location.Qubit,
				e.Injected, e.Final, e.DataWeight, e.FlagWeight,
			})
		}
		t.Render()
	}
	_, err := fmt.Fprintln(r.w, a.Report.Summary())

	return err
}

// Check renders c.
func (r *Renderer) Check(c Check) error {
	if c.Results == nil {
		c.Results = stabilizer.Results{}
	}
	switch r.format {
	case "json":
		return r.json(c)
	case "yaml":
		return r.yaml(c)
	}

	t := r.table()
	t.AppendHeader(table.Row{"Stabilizer", "Expectation", "Preserved"})
	for _, res := range c.Results {
		t.AppendRow(table.Row{res.Stabilizer, res.Expectation, res.Preserved})
	}
	t.Render()
	status := "all stabilizers preserved"
	if !c.Preserved {
		status = fmt.Sprintf("%d of %d stabilizers NOT preserved", len(c.Results.Failed()), len(c.Results))
	}
	_, err := fmt.Fprintf(r.w, "run %s  %s: %s\n", c.RunID, c.Source, status)

	return err
}

// Gates renders the vocabulary.
func (r *Renderer) Gates(gs []Gate) error {
	switch r.format {
	case "json":
		return r.json(gs)
	case "yaml":
		return r.yaml(gs)
	}

	t := r.table()
	t.AppendHeader(table.Row{"Name", "Arity", "Class", "Aliases"})
	for _, g := range gs {
		arity := fmt.Sprint(g.Arity)
		if g.Arity == 0 {
			arity = "any"
		}
		t.AppendRow(table.Row{g.Name, arity, g.Class, strings.Join(g.Aliases, ", ")})
	}
	t.Render()

	return nil
}

// Vocabulary lists every recognized gate kind with its aliases.
func Vocabulary() []Gate {
	byKind := make(map[circuit.GateKind][]string)
	for name, k := range circuit.Aliases() {
		byKind[k] = append(byKind[k], name)
	}
	kinds := circuit.Kinds()
	out := make([]Gate, 0, len(kinds))
	for _, k := range kinds {
		as := byKind[k]
		sort.Strings(as)
		out = append(out, Gate{Name: k.Name(), Arity: k.Arity(), Class: k.Class().String(), Aliases: as})
	}

	return out
}

func (r *Renderer) table() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)

	return t
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func (r *Renderer) yaml(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
