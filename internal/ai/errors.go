package ai

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a missing setting required to reach the model.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ai: $%s is not configured", e.Setting)
}

// ErrMissingAPIKey is returned by every call made without an API key.
var ErrMissingAPIKey error = &ConfigurationError{Setting: "API_KEY"}

// ErrEmptyResponse means the call succeeded but returned no usable text.
var ErrEmptyResponse = errors.New("ai: model returned an empty response")

// RemoteCallError wraps a network or service failure.
type RemoteCallError struct {
	Provider string
	Err      error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("ai: %s call failed: %v", e.Provider, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// ParseError means the reply did not have the expected JSON shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ai: unexpected response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
