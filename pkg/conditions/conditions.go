// Package conditions evaluates script conditions against player state.
// Evaluation is pure: no side effects, no entropy.
package conditions

import (
	"strconv"

	"github.com/wwoosshh/Nortoria/pkg/script"
)

// StateView is the minimal read surface a condition needs. *state.PlayerState
// implements it; keeping an interface here avoids an import cycle and lets
// tests supply fixed views.
type StateView interface {
	Flag(name string) int
	ItemCount(id string) int
	Currency() int64
	Relationship(characterID string) int
	HasMadeChoice(choiceID string) bool
}

// Evaluate reduces a condition list to a boolean. An empty list is true.
//
// Conditions combine left to right and the combinator lives on the previous
// element: for i>0, conditions[i-1].logicOperator decides how conditions[i]
// joins the running result. With OR, a true accumulator short-circuits the
// whole list to true; with AND (the default), a false accumulator
// short-circuits to false. This previous-element-driven combination is the
// historical authoring contract and is preserved exactly.
func Evaluate(conds []script.Condition, view StateView) bool {
	if len(conds) == 0 {
		return true
	}
	acc := evalOne(conds[0], view)
	for i := 1; i < len(conds); i++ {
		if conds[i-1].Logic() == script.LogicOr {
			if acc {
				return true
			}
		} else {
			if !acc {
				return false
			}
		}
		acc = evalOne(conds[i], view)
	}
	return acc
}

// evalOne resolves a single condition: its own predicate combined with its
// subCondition tree via its logicOperator. A condition without subConditions
// is just its own predicate; OR against an implicit empty (true) subtree
// would make such conditions vacuously true.
func evalOne(c script.Condition, view StateView) bool {
	main := evalMain(c, view)
	if len(c.SubConditions) == 0 {
		return main
	}
	sub := Evaluate(c.SubConditions, view)
	if c.Logic() == script.LogicOr {
		return main || sub
	}
	return main && sub
}

func evalMain(c script.Condition, view StateView) bool {
	switch c.Kind() {
	case script.CondFlag:
		return evalFlag(c, view.Flag(c.Target))
	case script.CondItem:
		n, ok := parseInt(c.Value)
		if !ok {
			return false
		}
		return compare(view.ItemCount(c.Target), c.Op(), n)
	case script.CondRelationship:
		n, ok := parseInt(c.Value)
		if !ok {
			return false
		}
		return compare(view.Relationship(c.Target), c.Op(), n)
	case script.CondChoice:
		// Operator and value are ignored; existence in history decides.
		return view.HasMadeChoice(c.Target)
	case script.CondCharacterAlive:
		return view.Flag(c.Target+"_alive") > 0
	case script.CondRouteProgress:
		n, ok := parseInt(c.Value)
		if !ok {
			return false
		}
		return compare(view.Flag("route_"+c.Target+"_progress"), c.Op(), n)
	case script.CondCurrency:
		n, err := strconv.ParseInt(c.Value, 10, 64)
		if err != nil {
			return false
		}
		return compare64(view.Currency(), c.Op(), n)
	default:
		// Conditions outside the grammar never block a line. Legacy
		// scripts rely on this.
		return true
	}
}

// evalFlag keeps the flag type's historical operator set: true/false test
// the counter's truthiness, comparisons parse the value, and an
// unrecognized operator falls open to true. The other numeric types fall
// back to >= instead; the asymmetry is deliberate and pinned by tests.
func evalFlag(c script.Condition, value int) bool {
	switch c.Op() {
	case script.OpTrue:
		return value > 0
	case script.OpFalse:
		return value == 0
	case script.OpEquals, script.OpGreater, script.OpLess,
		script.OpGreaterEqual, script.OpLessEqual, script.OpHas:
		n, ok := parseInt(c.Value)
		if !ok {
			return false
		}
		return compare(value, c.Op(), n)
	default:
		return true
	}
}

// compare applies an operator to two ints. OpHas and unrecognized operators
// default to >=, the "has at least" reading.
func compare(actual int, op script.Operator, expected int) bool {
	switch op {
	case script.OpEquals:
		return actual == expected
	case script.OpGreater:
		return actual > expected
	case script.OpLess:
		return actual < expected
	case script.OpGreaterEqual:
		return actual >= expected
	case script.OpLessEqual:
		return actual <= expected
	default:
		return actual >= expected
	}
}

func compare64(actual int64, op script.Operator, expected int64) bool {
	switch op {
	case script.OpEquals:
		return actual == expected
	case script.OpGreater:
		return actual > expected
	case script.OpLess:
		return actual < expected
	case script.OpGreaterEqual:
		return actual >= expected
	case script.OpLessEqual:
		return actual <= expected
	default:
		return actual >= expected
	}
}

// parseInt is the fail-closed numeric parse: a malformed value makes the
// condition false without aborting evaluation of its siblings.
func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
