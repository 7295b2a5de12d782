package errx

import (
	"fmt"
	"sync"
)

// ErrorCode is a registered error template.
type ErrorCode struct {
	Code       string
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry namespaces the error codes of one domain, e.g. "APPLICATION.NOT_FOUND".
type Registry struct {
	prefix string
	mu     sync.RWMutex
	codes  map[string]ErrorCode
}

func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]ErrorCode),
	}
}

// Register adds a code to the registry. Registering the same code twice panics.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) ErrorCode {
	r.mu.Lock()
	defer r.mu.Unlock()

	full := fmt.Sprintf("%s.%s", r.prefix, code)
	if _, exists := r.codes[full]; exists {
		panic("errx: duplicate error code " + full)
	}

	ec := ErrorCode{
		Code:       full,
		Type:       t,
		HTTPStatus: httpStatus,
		Message:    message,
	}
	r.codes[full] = ec
	return ec
}

// New instantiates a registered code.
func (r *Registry) New(code ErrorCode) *Error {
	return &Error{
		Code:       code.Code,
		Type:       code.Type,
		HTTPStatus: code.HTTPStatus,
		Message:    code.Message,
		Details:    map[string]any{},
	}
}

// NewWithCause instantiates a registered code wrapping err.
func (r *Registry) NewWithCause(code ErrorCode, err error) *Error {
	return r.New(code).WithCause(err)
}

// Codes lists every registered code.
func (r *Registry) Codes() []ErrorCode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ErrorCode, 0, len(r.codes))
	for _, c := range r.codes {
		out = append(out, c)
	}
	return out
}
