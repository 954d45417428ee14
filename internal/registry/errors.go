package registry

import "errors"

// Binding failures are reported through these sentinels so callers can
// branch on the failure class while the message stays specific to the
// module at hand.
var (
	// ErrNotATask reports a Declaration.Task value that is not a
	// *task.Task.
	ErrNotATask = errors.New("is not a task")

	// ErrConflictingTaskBinding reports an explicit task that differs
	// from the one the parent binding already carries.
	ErrConflictingTaskBinding = errors.New("conflicting task binding")

	// ErrNoRunDefined reports a newly bound task with no run entry point
	// to validate.
	ErrNoRunDefined = errors.New("no run defined")

	// ErrNoParametersDeclared reports a run signature without a single
	// parameter.
	ErrNoParametersDeclared = errors.New("no parameters declared")

	// ErrNoReturnTypeDeclared reports a run signature without a return
	// type.
	ErrNoReturnTypeDeclared = errors.New("no return type declared")

	// ErrMissingParameter reports required parameter names absent from
	// the run signature. All missing names are batched into one error.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrParameterTypeMismatch reports a parameter that is present but
	// fails the type match.
	ErrParameterTypeMismatch = errors.New("parameter type mismatch")

	// ErrOutputTypeMismatch reports a return type the descriptor does not
	// accept, or a run asking for an output flavor the task never
	// declared.
	ErrOutputTypeMismatch = errors.New("wrong output type")

	// ErrAlreadyRegistered reports a duplicate binding ID or module name
	// on Registry.Register.
	ErrAlreadyRegistered = errors.New("already registered")
)
