package calculator

// InputParseError is returned when a form field is not a real number. It
// deliberately does not identify the field.
type InputParseError struct {
	cause error
}

func (e *InputParseError) Error() string {
	return "input is not a valid number: " + e.cause.Error()
}

func (e *InputParseError) Unwrap() error {
	return e.cause
}

// ComputationError is returned when the properties could not be evaluated
type ComputationError struct {
	cause error
}

func (e *ComputationError) Error() string {
	return "calculation failed: " + e.cause.Error()
}

func (e *ComputationError) Unwrap() error {
	return e.cause
}
