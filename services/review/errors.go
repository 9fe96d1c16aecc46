package review

import "errors"

// ErrMechanicNotFound reports a review aimed at a mechanic id with no
// listing behind it.
var ErrMechanicNotFound = errors.New("mechanic not found")

// ValidationError reports malformed review input, caught before any write.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}
