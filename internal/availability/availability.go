// Package availability evaluates the access restrictions stored on a
// section and produces the message shown to viewers who cannot enter it.
//
// Restrictions are a JSON tree:
//
//	{"op":"&","show":true,"c":[{"type":"date","d":">=","t":1714521600}]}
//
// Only date conditions are understood. Unknown condition types never block.
package availability

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	// OpAnd requires every condition.
	OpAnd = "&"
	// OpOr requires any condition.
	OpOr = "|"

	// TypeDate is a condition on the current time.
	TypeDate = "date"

	// DirFrom opens access at t.
	DirFrom = ">="
	// DirUntil closes access at t.
	DirUntil = "<"

	// MsgAvailableFrom and friends are the message ids used for Info.
	MsgAvailableFrom  = "availablefrom"
	MsgAvailableUntil = "availableuntil"
	MsgJoinAnd        = "conditionand"
	MsgJoinOr         = "conditionor"

	dateLayout = "2 January 2006, 15:04"
)

// ErrUnknownOperator is returned for trees with an operator other than & and |.
var ErrUnknownOperator = errors.New("unknown availability operator")

// Translator looks up localized strings.
type Translator interface {
	T(messageID string, data map[string]any) string
}

// Condition is one leaf of the tree.
type Condition struct {
	Type string `json:"type"`
	D    string `json:"d"`
	T    int64  `json:"t"`
}

// Tree is the stored restriction set.
type Tree struct {
	Op   string      `json:"op"`
	C    []Condition `json:"c"`
	Show *bool       `json:"show,omitempty"`
}

// Result is the evaluation of a tree for one viewer at one time.
type Result struct {
	// Conditional is set when the tree holds at least one condition.
	Conditional bool
	Available   bool
	// Info is the disclosure message, empty when available or hidden.
	Info string
}

// Parse decodes a stored tree. An empty string is an empty tree.
func Parse(raw string) (Tree, error) {
	var tree Tree

	if strings.TrimSpace(raw) == "" {
		return tree, nil
	}

	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		return Tree{}, errors.Wrap(err, "failed to decode availability")
	}

	if tree.Op == "" {
		tree.Op = OpAnd
	}

	if tree.Op != OpAnd && tree.Op != OpOr {
		return Tree{}, errors.Wrapf(ErrUnknownOperator, "operator %q", tree.Op)
	}

	return tree, nil
}

// Evaluate parses raw and evaluates it at now.
func Evaluate(raw string, now time.Time, tr Translator) (Result, error) {
	tree, err := Parse(raw)
	if err != nil {
		return Result{Available: true}, err
	}

	return tree.Evaluate(now, tr), nil
}

// Evaluate checks the tree at now.
func (t Tree) Evaluate(now time.Time, tr Translator) Result {
	if len(t.C) == 0 {
		return Result{Available: true}
	}

	res := Result{Conditional: true, Available: t.Op == OpAnd}

	failing := make([]string, 0, len(t.C))

	for _, c := range t.C {
		ok := c.met(now)

		if t.Op == OpAnd {
			res.Available = res.Available && ok
		} else {
			res.Available = res.Available || ok
		}

		if !ok {
			failing = append(failing, c.describe(tr))
		}
	}

	if res.Available || (t.Show != nil && !*t.Show) {
		return res
	}

	joinID := MsgJoinAnd
	if t.Op == OpOr {
		joinID = MsgJoinOr
	}

	res.Info = strings.Join(failing, tr.T(joinID, nil))

	return res
}

func (c Condition) met(now time.Time) bool {
	if c.Type != TypeDate {
		return true
	}

	at := time.Unix(c.T, 0)

	switch c.D {
	case DirFrom:
		return !now.Before(at)
	case DirUntil:
		return now.Before(at)
	}

	return true
}

func (c Condition) describe(tr Translator) string {
	date := time.Unix(c.T, 0).UTC().Format(dateLayout)

	if c.D == DirUntil {
		return tr.T(MsgAvailableUntil, map[string]any{"Date": date})
	}

	return tr.T(MsgAvailableFrom, map[string]any{"Date": date})
}
