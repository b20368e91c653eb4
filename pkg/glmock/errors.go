package glmock

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by every lookup failure, mirroring the 404 returned
// by the real API.
var ErrNotFound = errors.New("404 Not Found")

// GetError describes a failed lookup in a registry.
type GetError struct {
	Message    string
	StatusCode int
	URL        string
}

func newGetError(registryPath, id string) *GetError {
	return &GetError{
		Message:    ErrNotFound.Error(),
		StatusCode: http.StatusNotFound,
		URL:        registryPath + "/" + id,
	}
}

func (e *GetError) Error() string {
	return fmt.Sprintf("%s: (%d): url: %s", e.Message, e.StatusCode, e.URL)
}

func (e *GetError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
