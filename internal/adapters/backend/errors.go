package backend

import "errors"

// Closed error set produced by the gateway. Transport and parsing
// failures never escape in raw form: every operation classifies its
// outcome into exactly one of these before returning.

var (
	// ErrInvalidCredentials is returned by Login when the authority
	// rejects the email/password pair (HTTP 401). Surfaced to the user;
	// no session state changes.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrServer is returned by Login for any failure that is neither a
	// credential rejection nor a validation message: 5xx, malformed
	// responses, timeouts.
	ErrServer = errors.New("server error")

	// ErrUnauthorized is returned by VerifyRole when the authority
	// explicitly rejects the bearer token (HTTP 401). This is the only
	// verify outcome authoritative enough to force a logout.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNetwork is returned by VerifyRole when no HTTP response was
	// received at all. Non-authoritative: callers keep their prior
	// decision.
	ErrNetwork = errors.New("network error")

	// ErrVerificationFailed is returned by VerifyRole for every other
	// failure (5xx, malformed body). Non-authoritative, but logged.
	ErrVerificationFailed = errors.New("role verification failed")
)

// ValidationError carries the authority's HTTP 400 message from Login,
// surfaced to the user verbatim. When the payload holds a list of
// messages, Message is the first element.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
