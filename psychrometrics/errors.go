package psychrometrics

// ComputationError reports a singularity in the formula, such as vapor
// pressure reaching atmospheric pressure
type ComputationError struct {
	Reason string
}

func (e *ComputationError) Error() string {
	return e.Reason
}
