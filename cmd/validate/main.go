package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wwoosshh/Nortoria/pkg/script"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <script.json>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		v := &ScriptValidator{}
		if err := v.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

type ScriptValidator struct {
	errors []string
}

func (v *ScriptValidator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *ScriptValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var doc script.Document
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.errors = nil
	v.validateDocument(&doc)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *ScriptValidator) validateDocument(doc *script.Document) {
	if doc.Chapter <= 0 || doc.Episode <= 0 {
		v.errorf("chapter and episode must be positive, got %d-%d", doc.Chapter, doc.Episode)
	}

	for i := range doc.Lines {
		v.validateLine(doc, i)
	}
}

func (v *ScriptValidator) validateLine(doc *script.Document, i int) {
	line := &doc.Lines[i]

	if line.Index != i {
		v.errorf("line %d: index field is %d, must equal its array offset", i, line.Index)
	}
	if line.Type == script.LineUnknown {
		v.errorf("line %d: unknown line type", i)
	}
	if line.Type == script.LineChoice && len(line.Choices) == 0 {
		v.errorf("line %d: choice line has no choices", i)
	}
	if line.Type == script.LineChoice && len(line.Choices) > 0 && allChoicesGated(line.Choices) {
		v.errorf("line %d: every choice is condition-gated or costed; the line is skipped when none is visible", i)
	}
	if line.Type != script.LineChoice && len(line.Choices) > 0 {
		v.errorf("line %d: choices on a non-choice line are ignored", i)
	}

	for ci, c := range line.Choices {
		if c.NextScriptIndex < 0 || c.NextScriptIndex > len(doc.Lines) {
			v.errorf("line %d choice %d: nextScriptIndex %d out of range [0,%d]",
				i, ci, c.NextScriptIndex, len(doc.Lines))
		}
		if c.Text.IsEmpty() {
			v.errorf("line %d choice %d: empty text", i, ci)
		}
		v.validateConditions(fmt.Sprintf("line %d choice %d", i, ci), c.DisplayConditions)
		v.validateEffects(fmt.Sprintf("line %d choice %d", i, ci), c.Effects)
		if c.Cost != nil {
			if c.Cost.Currency < 0 {
				v.errorf("line %d choice %d: negative currency cost", i, ci)
			}
			for item, amount := range c.Cost.Items {
				if amount <= 0 {
					v.errorf("line %d choice %d: non-positive cost for item %q", i, ci, item)
				}
			}
		}
	}

	v.validateConditions(fmt.Sprintf("line %d", i), line.Conditions)
	v.validateEffects(fmt.Sprintf("line %d", i), line.Effects)

	for ti, alt := range line.AlternativeTexts {
		v.validateConditions(fmt.Sprintf("line %d alternativeText %d", i, ti), alt.Conditions)
	}
}

func (v *ScriptValidator) validateConditions(where string, conds []script.Condition) {
	for ci, c := range conds {
		if c.Kind() == script.CondUnknown {
			v.errorf("%s condition %d: unknown type %q", where, ci, c.Type)
			continue
		}
		if c.Target == "" && c.Kind() != script.CondCurrency {
			v.errorf("%s condition %d: empty target", where, ci)
		}
		if needsNumericValue(c) {
			if _, err := strconv.ParseInt(c.Value, 10, 64); err != nil {
				v.errorf("%s condition %d: value %q is not numeric", where, ci, c.Value)
			}
		}
		v.validateConditions(where+" sub", c.SubConditions)
	}
}

// allChoicesGated reports whether no choice is guaranteed visible: every
// choice carries display conditions or a price.
func allChoicesGated(choices []script.Choice) bool {
	for i := range choices {
		if len(choices[i].DisplayConditions) == 0 && choices[i].Cost.IsFree() {
			return false
		}
	}
	return true
}

// needsNumericValue reports whether the condition's operator compares
// against a parsed number. Choice existence and flag truthiness don't.
func needsNumericValue(c script.Condition) bool {
	if c.Kind() == script.CondChoice || c.Kind() == script.CondCharacterAlive {
		return false
	}
	if c.Kind() == script.CondFlag {
		switch c.Op() {
		case script.OpTrue, script.OpFalse, script.OpUnknown:
			return false
		}
	}
	return true
}

func (v *ScriptValidator) validateEffects(where string, effs []script.Effect) {
	for ei, e := range effs {
		if e.Kind() == script.EffectUnknown {
			v.errorf("%s effect %d: unknown type %q", where, ei, e.Type)
			continue
		}
		if e.Verb() == script.ActionUnknown {
			v.errorf("%s effect %d: unknown action %q", where, ei, e.Action)
		}
		if e.Probability < 0 || e.Probability > 1 {
			v.errorf("%s effect %d: probability %v outside [0,1]", where, ei, e.Probability)
		}
		if e.Target == "" && e.Kind() != script.EffectCurrency {
			v.errorf("%s effect %d: empty target", where, ei)
		}
	}
}
