package ai

import "fmt"

// ConfigurationError indicates missing credentials or endpoint configuration
// for the selected backend. It is returned before any network call is made.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Missing)
}

// ProviderError indicates a transport failure or a non-success HTTP status
// from a model backend.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ParseError indicates that a model response was not valid JSON or did not
// match the expected shape.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DomainError wraps any backend or parse failure with the domain operation
// that failed, e.g. "define word". Callers decide how to surface it; no
// retry is performed anywhere.
type DomainError struct {
	Op  string
	Err error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
