package userRepo

import "errors"

// ErrDuplicateEmail is returned when an insert or update collides with the
// unique email index.
var ErrDuplicateEmail = errors.New("a user with this email already exists")
