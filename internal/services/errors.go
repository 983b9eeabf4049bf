package services

// Error types shared by services (checked in handlers.handleServiceError)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// ConfigurationError means the completion service credentials are missing
// or unusable. Raised at construction time, before any request is served.
type ConfigurationError struct{ Message string }

func (e *ConfigurationError) Error() string { return e.Message }

// CompletionError wraps any failure of the external completion call:
// network, provider-side error, or a malformed response.
type CompletionError struct{ Message string }

func (e *CompletionError) Error() string { return e.Message }
