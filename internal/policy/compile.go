package policy

import (
	"fmt"

	"cuelang.org/go/cue"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError reports a policy pack field that failed to compile, with
// the CUE source position when available.
type CompileError struct {
	Jurisdiction string
	Field        string
	Message      string
	Pos          token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: policy %s: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Jurisdiction, e.Field, e.Message)
	}
	if e.Jurisdiction != "" {
		return fmt.Sprintf("policy %s: %s: %s", e.Jurisdiction, e.Field, e.Message)
	}
	return fmt.Sprintf("policy: %s: %s", e.Field, e.Message)
}

// CompileTable parses the top-level "policy" struct of a CUE value into a
// Table. A missing "policy" field yields an empty table, not an error, so
// packs can be split across files.
func CompileTable(v cue.Value) (Table, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	table := Table{}

	packVal := v.LookupPath(cue.ParsePath("policy"))
	if !packVal.Exists() {
		return table, nil
	}

	iter, err := packVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		code := iter.Selector().Unquoted()
		p, err := compilePolicy(code, iter.Value())
		if err != nil {
			return nil, err
		}
		table[code] = p
	}

	return table, nil
}

// compilePolicy parses one jurisdiction entry. The two authority predicates
// are required; the collapse default is optional and defaults to false.
func compilePolicy(code string, v cue.Value) (Policy, error) {
	p := Policy{Jurisdiction: code}

	var err error
	p.TemporaryCustodyUnderStateAuthority, err = requiredBool(code, v, "temporary_custody_under_state_authority")
	if err != nil {
		return Policy{}, err
	}
	p.NonPrisonUnderStateAuthority, err = requiredBool(code, v, "non_prison_under_state_authority")
	if err != nil {
		return Policy{}, err
	}

	collapseVal := v.LookupPath(cue.ParsePath("collapse_temporary_custody_with_revocation"))
	if collapseVal.Exists() {
		b, err := collapseVal.Bool()
		if err != nil {
			return Policy{}, &CompileError{
				Jurisdiction: code,
				Field:        "collapse_temporary_custody_with_revocation",
				Message:      "must be a bool",
				Pos:          collapseVal.Pos(),
			}
		}
		p.CollapseTemporaryCustodyWithRevocation = b
	}

	return p, nil
}

func requiredBool(code string, v cue.Value, field string) (bool, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return false, &CompileError{
			Jurisdiction: code,
			Field:        field,
			Message:      "required field missing",
			Pos:          v.Pos(),
		}
	}
	b, err := fieldVal.Bool()
	if err != nil {
		return false, &CompileError{
			Jurisdiction: code,
			Field:        field,
			Message:      "must be a bool",
			Pos:          fieldVal.Pos(),
		}
	}
	return b, nil
}

// formatCUEError converts a CUE error into a CompileError carrying the
// first available source position.
func formatCUEError(err error) error {
	positions := cueerrors.Positions(err)
	pos := token.NoPos
	if len(positions) > 0 {
		pos = positions[0]
	}
	return &CompileError{
		Field:   "cue",
		Message: cueerrors.Details(err, nil),
		Pos:     pos,
	}
}
