package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/quantumbox/internal/game"
)

// String renders one transcript line, e.g.
//
//	+3.6s input phase=awaiting_input prompt=awaiting_input highlight=blue symbol=blue cursor=1 remaining=1.4s
func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "+%s %s phase=%s prompt=%s", e.At, e.Kind, e.Phase, e.Prompt)
	if e.Highlight != game.NoSymbol {
		fmt.Fprintf(&b, " highlight=%s", e.Highlight)
	}
	if e.Kind == game.EventInput {
		fmt.Fprintf(&b, " symbol=%s", e.Symbol)
	}
	fmt.Fprintf(&b, " cursor=%d", e.Cursor)
	if e.Retries > 0 {
		fmt.Fprintf(&b, " retries=%d", e.Retries)
	}
	fmt.Fprintf(&b, " remaining=%s", e.Remaining)
	return b.String()
}

// WriteText writes the transcript, a summary line and any failures.
func (r *Result) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario %s\n", r.Name)
	for _, e := range r.Entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "result outcome=%s solved=%d expired=%d", r.Outcome, r.Solved, r.Expired)
	if r.Outcome != game.OutcomeNone {
		fmt.Fprintf(&b, " elapsed=%s", r.Elapsed)
	}
	b.WriteByte('\n')
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "FAIL %s\n", f)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type entryJSON struct {
	At        string `json:"at"`
	Kind      string `json:"kind"`
	Phase     string `json:"phase"`
	Prompt    string `json:"prompt"`
	Highlight string `json:"highlight,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	Cursor    int    `json:"cursor"`
	Retries   int    `json:"retries"`
	Remaining string `json:"remaining"`
}

type resultJSON struct {
	Name     string      `json:"name"`
	Outcome  string      `json:"outcome"`
	Elapsed  string      `json:"elapsed,omitempty"`
	Solved   int         `json:"solved"`
	Expired  int         `json:"expired"`
	Passed   bool        `json:"passed"`
	Failures []string    `json:"failures"`
	Entries  []entryJSON `json:"entries"`
}

// MarshalJSON renders durations and enums as strings.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Name:     r.Name,
		Outcome:  r.Outcome.String(),
		Solved:   r.Solved,
		Expired:  r.Expired,
		Passed:   r.Passed(),
		Failures: r.Failures,
		Entries:  make([]entryJSON, 0, len(r.Entries)),
	}
	if out.Failures == nil {
		out.Failures = []string{}
	}
	if r.Outcome != game.OutcomeNone {
		out.Elapsed = r.Elapsed.String()
	}
	for _, e := range r.Entries {
		ej := entryJSON{
			At:        e.At.String(),
			Kind:      e.Kind.String(),
			Phase:     e.Phase.String(),
			Prompt:    e.Prompt.String(),
			Cursor:    e.Cursor,
			Retries:   e.Retries,
			Remaining: e.Remaining.String(),
		}
		if e.Highlight != game.NoSymbol {
			ej.Highlight = e.Highlight.Color()
		}
		if e.Kind == game.EventInput {
			ej.Symbol = e.Symbol.Color()
		}
		out.Entries = append(out.Entries, ej)
	}
	return json.Marshal(out)
}

// WriteJSON writes r as indented JSON.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
