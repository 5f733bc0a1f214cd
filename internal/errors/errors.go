package errors

import "fmt"

type Kind string

const (
	InvalidConfig Kind = "invalid_config"
	AuthFailure   Kind = "auth_failure"
	Transport     Kind = "transport"
	IOFailure     Kind = "io_failure"
	Internal      Kind = "internal"
)

type AppError struct {
	Kind   Kind
	Op     string
	Detail string
	Err    error
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, detail string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind:   kind,
		Op:     op,
		Detail: detail,
		Err:    err,
	}
}

func UserMessage(err error) string {
	appErr, ok := err.(*AppError)
	if !ok {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case AuthFailure:
		return fmt.Sprintf("Slack rejected the credentials during %s: %v", appErr.Op, appErr.Err)
	case Transport:
		return fmt.Sprintf("Slack request failed during %s: %v", appErr.Op, appErr.Err)
	case IOFailure:
		if appErr.Detail != "" {
			return fmt.Sprintf("I/O error on %s: %v", appErr.Detail, appErr.Err)
		}
		return fmt.Sprintf("I/O error: %v", appErr.Err)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
