package config

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

func init() {
	// Configuration structures are tagged for mapstructure rather than json.
	validation.ErrorTag = "mapstructure"
}

// ValidationError describes why a configuration structure failed validation.
type ValidationError struct {
	tree             []string
	mapStructureTree []string
	reason           string
}

// WrapFieldValidationError creates an error resulting from the validation of a field in a structure
func WrapFieldValidationError(fieldName string, mapStructure *string, err error) error {
	if err == nil {
		return nil
	}
	vErr := newValidationError(err)
	vErr.tree = append([]string{strings.TrimSpace(fieldName)}, vErr.tree...)
	if mapStructure != nil {
		vErr.mapStructureTree = append([]string{strings.ToUpper(strings.TrimSpace(*mapStructure))}, vErr.mapStructureTree...)
	}
	return vErr
}

func newValidationError(err error) *ValidationError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return &ValidationError{
			tree:             append([]string{}, vErr.tree...),
			mapStructureTree: append([]string{}, vErr.mapStructureTree...),
			reason:           vErr.reason,
		}
	}
	var oes validation.Errors
	if errors.As(err, &oes) {
		return &ValidationError{reason: oes.Error()}
	}
	return &ValidationError{reason: err.Error()}
}

// GetTreePath returns the path to the invalid field e.g. `Saga->StepTimeout`.
func (v *ValidationError) GetTreePath() string {
	return strings.Join(v.tree, "->")
}

// GetMapStructurePath returns the environment variable suffix of the invalid field e.g. `SAGA_STEP_TIMEOUT`.
func (v *ValidationError) GetMapStructurePath() string {
	return strings.ReplaceAll(strings.Join(v.mapStructureTree, "_"), "-", "_")
}

func (v *ValidationError) GetReason() string {
	return v.reason
}

func (v *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("structure failed validation:")
	if tree := v.GetTreePath(); tree != "" {
		b.WriteString(fmt.Sprintf(" (%v)", tree))
	}
	if env := v.GetMapStructurePath(); env != "" {
		b.WriteString(fmt.Sprintf(" [%v]", env))
	}
	if v.reason != "" {
		b.WriteString(" " + v.reason)
	}
	return commonerrors.New(commonerrors.ErrInvalid, b.String()).Error()
}

func (v *ValidationError) Unwrap() error {
	return commonerrors.ErrInvalid
}

// WrapValidationError turns any validation failure (e.g. ozzo-validation errors) into an error of type commonerrors.ErrInvalid.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return newValidationError(err)
}
