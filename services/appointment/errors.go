package appointment

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports that the referenced appointment does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// LimitExceededError reports that the owner's booking cap is reached.
type LimitExceededError struct {
	Message string
}

func (e *LimitExceededError) Error() string { return e.Message }

// AlreadyPaidError reports an operation conflicting with a completed payment.
type AlreadyPaidError struct {
	Message string
}

func (e *AlreadyPaidError) Error() string { return e.Message }

// InvalidStateError reports an operation that is not valid for the
// appointment's current lifecycle state.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }
