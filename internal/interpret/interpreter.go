// Package interpret turns a free-form user utterance plus the catalog
// snapshot into a validated list of event identifiers. The matching itself
// is delegated to an external reasoning capability constrained by the
// guardrail ruleset; determinism is enforced at this boundary by a
// low-temperature configuration upstream and strict sanitization downstream.
package interpret

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/event-search/internal/guardrail"
)

// ErrEmptyQuery is returned when the utterance is empty after trimming.
// Handlers translate it into a client error.
var ErrEmptyQuery = errors.New("empty query")

// Interpreter composes the fixed instruction payload with the catalog
// snapshot and the utterance, and delegates to the reasoning capability. It
// holds no per-request state; every call is independent.
type Interpreter struct {
	reasoner Reasoner
	rules    *guardrail.Ruleset
	refDate  string
}

// NewInterpreter wires an interpreter to its reasoning capability. refDate
// is the anchor date (YYYY-MM-DD) used to resolve relative dates in
// utterances; it is baked into the rendered instructions.
func NewInterpreter(reasoner Reasoner, rules *guardrail.Ruleset, refDate string) *Interpreter {
	return &Interpreter{
		reasoner: reasoner,
		rules:    rules,
		refDate:  refDate,
	}
}

// Interpret runs one utterance against the given catalog snapshot and
// returns the reasoning capability's raw textual output. The output is
// untrusted; callers must pass it through ExtractIDs. Transport and
// configuration failures propagate unchanged for the boundary to map onto
// the HTTP error taxonomy.
func (i *Interpreter) Interpret(ctx context.Context, utterance string, snapshot []byte) (string, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return "", ErrEmptyQuery
	}

	system := i.rules.Instructions(i.refDate)
	user := fmt.Sprintf("User query:\n%s\n\nEvents JSON:\n%s\n", utterance, snapshot)

	return i.reasoner.Complete(ctx, system, user)
}
