package auth

import (
	"errors"
	"fmt"
)

// ErrAuthenticationFailed marks a transient failure of the authorization-code
// exchange. The whole exchange may be retried with a fresh code.
var ErrAuthenticationFailed = errors.New("authentication failed")

// AuthenticationRequiredError is returned when no usable session exists and
// the user must complete the out-of-band consent flow. AuthURL is the address
// the user visits to obtain a one-time authorization code.
type AuthenticationRequiredError struct {
	AuthURL string
}

func (e *AuthenticationRequiredError) Error() string {
	return fmt.Sprintf("authentication required: visit %s and supply the authorization code", e.AuthURL)
}
