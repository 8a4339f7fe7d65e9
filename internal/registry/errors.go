package registry

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError reports a transport failure: the registry could not be reached
// or the connection broke before a response arrived.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: registry unreachable: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RegistryError reports a non-success response, or a body that could not be
// decoded.
type RegistryError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RegistryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: registry returned status %d", e.Op, e.StatusCode)
}

func (e *RegistryError) Unwrap() error { return e.Err }

// NotFoundError reports that a single trip is absent.
type NotFoundError struct {
	ID         string
	StatusCode int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("trip %q not found", e.ID)
}

// UpdateError reports that the registry rejected a trip write.
type UpdateError struct {
	ID         string
	StatusCode int
	Err        error
}

func (e *UpdateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("update trip %q: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("update trip %q: registry returned status %d", e.ID, e.StatusCode)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// Message converts a registry failure into the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var (
		netErr      *NetworkError
		notFoundErr *NotFoundError
		updateErr   *UpdateError
		regErr      *RegistryError
	)
	switch {
	case errors.As(err, &notFoundErr):
		return "Trip not found"
	case errors.As(err, &updateErr):
		return "Could not update trip status"
	case errors.As(err, &netErr):
		return "Registry unreachable, check your connection"
	case errors.As(err, &regErr):
		if regErr.StatusCode > 0 {
			return fmt.Sprintf("Registry error: %d %s", regErr.StatusCode, http.StatusText(regErr.StatusCode))
		}
		return "Registry returned an unreadable response"
	default:
		return err.Error()
	}
}
