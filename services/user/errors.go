package user

import "errors"

var (
	// ErrEmailInUse reports a sign-up against an already registered email.
	ErrEmailInUse = errors.New("this email is already registered")
	// ErrInvalidCredentials reports a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports malformed sign-up or profile input, caught before
// any write.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}
