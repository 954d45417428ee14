package typexpr

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/bindkit/bindkit/internal/datamodel"
)

// Matcher failure modes. Callers wrap these with position-specific
// errors; errors.Is distinguishes shape faults from member faults.
var (
	// ErrNotStructuredType reports that a type expected to carry the
	// data model capability has no qualifying member.
	ErrNotStructuredType = errors.New("not a structured type")

	// ErrNotIterableType reports a stream/non-stream shape mismatch.
	ErrNotIterableType = errors.New("not an iterable type")

	// ErrTypeMismatch reports aligned shapes with incompatible members.
	ErrTypeMismatch = errors.New("type mismatch")
)

// MatchParameter decides whether an observed parameter type satisfies a
// declared one. Shapes must agree: a stream on one side only fails with
// ErrNotIterableType. Streams recurse on their elements. Otherwise the
// observed expression satisfies the declared one when every declared
// member is assignable from some observed member. The consequences are
// deliberate: a declared T accepts an observed optional(T) or a wider
// observed union containing T, while a declared optional(T) rejects a
// bare observed T, whose signature cannot take the null case.
func MatchParameter(declared, observed Expr) error {
	if !declared.IsValid() || !observed.IsValid() {
		return errors.New("typexpr: match on invalid expression")
	}
	if declared.IsStream() != observed.IsStream() {
		return shapeError(declared, observed)
	}
	if declared.IsStream() {
		return MatchParameter(declared.Inner(), observed.Inner())
	}
	obs := observed.memberTypes()
	for _, d := range declared.memberTypes() {
		if !anyAssignable(obs, d) {
			return fmt.Errorf("required %s is not satisfied by %s: %w", declared, observed, ErrTypeMismatch)
		}
	}
	return nil
}

// MatchOutput decides whether an observed return type satisfies a
// declared output. The shape rule is identical to MatchParameter, but
// member matching is permissive in the other direction: it succeeds
// when any observed member is assignable to any declared member, so a
// callable declaring it may return the required type among others is
// accepted, and a declared union is satisfied by any one of its
// members.
func MatchOutput(declared, observed Expr) error {
	if !declared.IsValid() || !observed.IsValid() {
		return errors.New("typexpr: match on invalid expression")
	}
	if declared.IsStream() != observed.IsStream() {
		return shapeError(declared, observed)
	}
	if declared.IsStream() {
		return MatchOutput(declared.Inner(), observed.Inner())
	}
	for _, o := range observed.memberTypes() {
		for _, d := range declared.memberTypes() {
			if datamodel.Assignable(o, d) {
				return nil
			}
		}
	}
	return fmt.Errorf("declared %s does not accept %s: %w", declared, observed, ErrTypeMismatch)
}

// ExtractDataModel returns the first declared-order member of the
// expression that carries the data model capability, unwrapping a
// stream first. A qualifying bare nominal returns itself, which makes
// the operation idempotent. Expressions with no qualifying member fail
// with ErrNotStructuredType.
func ExtractDataModel(e Expr) (reflect.Type, error) {
	if !e.IsValid() {
		return nil, errors.New("typexpr: extract on invalid expression")
	}
	if e.IsStream() {
		return ExtractDataModel(e.Inner())
	}
	for _, t := range e.memberTypes() {
		if datamodel.Implements(t) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%s has no member with the data model capability: %w", e, ErrNotStructuredType)
}

func shapeError(declared, observed Expr) error {
	return fmt.Errorf("declared %s, observed %s: %w", declared, observed, ErrNotIterableType)
}

func anyAssignable(observed []reflect.Type, declared reflect.Type) bool {
	for _, o := range observed {
		if datamodel.Assignable(o, declared) {
			return true
		}
	}
	return false
}
