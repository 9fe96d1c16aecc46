package mechanic

import "errors"

var (
	// ErrMechanicNotFound reports a lookup of a user id with no listing.
	ErrMechanicNotFound = errors.New("mechanic not found")
	// ErrAlreadyMechanic reports a registration by an account that already
	// owns a listing.
	ErrAlreadyMechanic = errors.New("account already has a mechanic listing")
)

// ValidationError reports malformed registration or update input, caught
// before any write.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}
