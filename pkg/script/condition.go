package script

import "strings"

// ConditionType selects which part of the player state a condition reads.
type ConditionType string

const (
	CondFlag           ConditionType = "flag"
	CondItem           ConditionType = "item"
	CondRelationship   ConditionType = "relationship"
	CondChoice         ConditionType = "choice"
	CondCharacterAlive ConditionType = "character_alive"
	CondRouteProgress  ConditionType = "route_progress"
	CondCurrency       ConditionType = "currency"
	CondUnknown        ConditionType = "unknown"
)

var conditionTypes = map[string]ConditionType{
	"flag":            CondFlag,
	"item":            CondItem,
	"relationship":    CondRelationship,
	"choice":          CondChoice,
	"character_alive": CondCharacterAlive,
	"route_progress":  CondRouteProgress,
	"currency":        CondCurrency,
}

// Operator is a comparison operator in the condition grammar.
type Operator string

const (
	OpEquals       Operator = "equals"
	OpGreater      Operator = "greater"
	OpLess         Operator = "less"
	OpGreaterEqual Operator = "greater_equal"
	OpLessEqual    Operator = "less_equal"
	OpTrue         Operator = "true"
	OpFalse        Operator = "false"
	OpHas          Operator = "has"
	OpUnknown      Operator = "op_unknown"
)

var operators = map[string]Operator{
	"equals":        OpEquals,
	"greater":       OpGreater,
	"less":          OpLess,
	"greater_equal": OpGreaterEqual,
	"less_equal":    OpLessEqual,
	"true":          OpTrue,
	"false":         OpFalse,
	"has":           OpHas,
}

// LogicOp combines a condition with its next sibling and its subConditions.
type LogicOp string

const (
	LogicAnd LogicOp = "AND"
	LogicOr  LogicOp = "OR"
)

// Condition is one boolean predicate over player state. The raw Type,
// Operator and LogicOperator strings come from the authoring format and are
// matched case-insensitively via Kind, Op and Logic.
type Condition struct {
	Type          string      `json:"type"`
	Target        string      `json:"target"`
	Operator      string      `json:"operator,omitempty"`
	Value         string      `json:"value,omitempty"`
	LogicOperator string      `json:"logicOperator,omitempty"`
	SubConditions []Condition `json:"subConditions,omitempty"`
}

// Kind returns the closed condition type, CondUnknown for anything
// outside the grammar.
func (c Condition) Kind() ConditionType {
	if t, ok := conditionTypes[strings.ToLower(c.Type)]; ok {
		return t
	}
	return CondUnknown
}

// Op returns the closed operator, OpUnknown for anything outside the grammar.
func (c Condition) Op() Operator {
	if op, ok := operators[strings.ToLower(c.Operator)]; ok {
		return op
	}
	return OpUnknown
}

// Logic returns the combinator for the next sibling and subConditions.
// Anything other than "OR" means AND.
func (c Condition) Logic() LogicOp {
	if strings.EqualFold(c.LogicOperator, "or") {
		return LogicOr
	}
	return LogicAnd
}
