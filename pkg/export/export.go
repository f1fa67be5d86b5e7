// Package export serializes traces in the parallel-array wire shape shared by
// the HTTP API and the CLI.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/sortviz/pkg/domain/trace"
	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ErrUnsupportedFormat is returned for formats other than json, yaml and msgpack.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat converts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Payload is the wire form of a trace. All slices are index-aligned.
type Payload struct {
	Algorithm         types.AlgorithmTag `json:"algorithm,omitempty" yaml:"algorithm,omitempty" msgpack:"algorithm,omitempty"`
	RunID             string             `json:"run_id,omitempty" yaml:"run_id,omitempty" msgpack:"run_id,omitempty"`
	Steps             [][]int            `json:"steps" yaml:"steps" msgpack:"steps"`
	Explanations      []string           `json:"explanations" yaml:"explanations" msgpack:"explanations"`
	LogicExplanations []string           `json:"logic_explanations" yaml:"logic_explanations" msgpack:"logic_explanations"`
	Highlights        []trace.Highlight  `json:"highlights" yaml:"highlights" msgpack:"highlights"`
	TotalSteps        int                `json:"total_steps" yaml:"total_steps" msgpack:"total_steps"`
}

// NewPayload flattens t into parallel arrays. runID may be zero.
func NewPayload(t *trace.Trace, runID types.RunID) Payload {
	p := Payload{
		Algorithm:         t.Algorithm,
		Steps:             t.Snapshots(),
		Explanations:      t.Explanations(),
		LogicExplanations: t.LogicExplanations(),
		Highlights:        t.Highlights(),
		TotalSteps:        t.Len(),
	}
	if !runID.IsZero() {
		p.RunID = runID.String()
	}
	return p
}

// Select returns a payload holding only the steps at indices, in order.
func (p Payload) Select(indices []int) Payload {
	out := Payload{
		Algorithm:         p.Algorithm,
		RunID:             p.RunID,
		Steps:             make([][]int, 0, len(indices)),
		Explanations:      make([]string, 0, len(indices)),
		LogicExplanations: make([]string, 0, len(indices)),
		Highlights:        make([]trace.Highlight, 0, len(indices)),
	}
	for _, i := range indices {
		if i < 0 || i >= len(p.Steps) {
			continue
		}
		out.Steps = append(out.Steps, p.Steps[i])
		out.Explanations = append(out.Explanations, p.Explanations[i])
		out.LogicExplanations = append(out.LogicExplanations, p.LogicExplanations[i])
		out.Highlights = append(out.Highlights, p.Highlights[i])
	}
	out.TotalSteps = len(out.Steps)
	return out
}

// Trace rebuilds a trace from the payload's parallel arrays. It fails if
// the arrays are not index-aligned.
func (p Payload) Trace() (*trace.Trace, error) {
	n := len(p.Steps)
	if len(p.Explanations) != n || len(p.LogicExplanations) != n || len(p.Highlights) != n {
		return nil, fmt.Errorf("payload arrays are not aligned: %d steps, %d explanations, %d logic explanations, %d highlights",
			n, len(p.Explanations), len(p.LogicExplanations), len(p.Highlights))
	}
	if p.TotalSteps != n {
		return nil, fmt.Errorf("total_steps is %d but payload has %d steps", p.TotalSteps, n)
	}

	t := &trace.Trace{Algorithm: p.Algorithm, Steps: make([]trace.Step, n)}
	for i := range p.Steps {
		// Decoders may yield nil for empty role lists.
		h := p.Highlights[i]
		highlight := trace.NewHighlight().
			WithComparing(h.Comparing...).
			WithSwapping(h.Swapping...).
			WithSorted(h.Sorted...).
			WithPivot(h.Pivot...)
		t.Steps[i] = trace.Step{
			Snapshot:         p.Steps[i],
			Explanation:      p.Explanations[i],
			LogicExplanation: p.LogicExplanations[i],
			Highlight:        highlight,
		}
	}
	return t, nil
}

// Encode writes t to w in the given format.
func Encode(w io.Writer, t *trace.Trace, runID types.RunID, format Format) error {
	return EncodePayload(w, NewPayload(t, runID), format)
}

// EncodePayload writes an already flattened payload to w.
func EncodePayload(w io.Writer, p Payload, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(p); err != nil {
			return fmt.Errorf("failed to encode msgpack: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// Decode reads a payload previously written by Encode.
func Decode(r io.Reader, format Format) (Payload, error) {
	var p Payload
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&p)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&p)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&p)
	default:
		return p, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return p, fmt.Errorf("failed to decode %s payload: %w", format, err)
	}
	return p, nil
}
