package user

// ValidationError reports malformed or missing registration input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// DuplicateEmailError signals a registration against an existing email.
type DuplicateEmailError struct{}

func (e *DuplicateEmailError) Error() string { return "User already exists." }

// NotFoundError reports that the referenced user does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// BadCredentialsError reports a failed password check.
type BadCredentialsError struct {
	Message string
}

func (e *BadCredentialsError) Error() string { return e.Message }
