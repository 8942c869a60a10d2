package client

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrCredentialsRequired is returned when an operation needs credentials the
// client does not hold.
var ErrCredentialsRequired = errors.New("api credentials not configured")

// RequestError is a non-2xx HTTP response. It carries the server's error
// text verbatim: that text is the only diagnostic signal for credential or
// address mismatches.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.Status, e.Body)
}

// Unauthorized reports whether the response is an authentication failure.
func (e *RequestError) Unauthorized() bool {
	return e.Status == 401 || strings.Contains(strings.ToLower(e.Body), "unauthorized")
}

// IsUnauthorized reports whether err is an authentication-class request
// error anywhere in its chain.
func IsUnauthorized(err error) bool {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Unauthorized()
	}
	return false
}
