package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidAuth means Slack rejected the credential itself. Retrying cannot
// help; the caller should surface it and stop.
var ErrInvalidAuth = errors.New("slack rejected the credentials")

// ErrNameTaken means the destination workspace already has an emoji with the
// submitted name. Benign on re-runs.
var ErrNameTaken = errors.New("emoji name already taken")

// RateLimitError is the endpoint asking us to slow down. RetryAfter carries
// the server's wait hint when one was provided.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// RejectionError is a semantic "no" from an endpoint, carrying Slack's error
// code or the HTTP status line.
type RejectionError struct {
	Code string
}

func (e *RejectionError) Error() string {
	return "rejected by slack: " + e.Code
}

const aliasPrefix = "alias:"

// IsAlias reports whether a catalog URL names another emoji instead of an
// image.
func IsAlias(sourceURL string) bool {
	return strings.HasPrefix(sourceURL, aliasPrefix)
}

// IsAlreadyExists classifies an upload error as the benign duplicate case.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrNameTaken)
}

// RateLimitHint reports whether err is a rate-limit signal, and the server's
// wait hint if it sent one.
func RateLimitHint(err error) (time.Duration, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl.RetryAfter, true
	}
	return 0, false
}

// apiError maps an ok:false error code onto the package's error types.
func apiError(code string) error {
	switch code {
	case "invalid_auth", "not_authed", "account_inactive", "token_revoked", "token_expired", "missing_scope":
		return errors.Wrap(ErrInvalidAuth, code)
	case "ratelimited", "rate_limited":
		return &RateLimitError{}
	case "error_name_taken", "name_taken":
		return errors.Wrap(ErrNameTaken, code)
	default:
		return &RejectionError{Code: code}
	}
}
