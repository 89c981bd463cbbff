package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeManifestNotFound, "manifest %s does not exist", "bower.json")

	if err.Code != ErrCodeManifestNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeManifestNotFound)
	}

	if err.Message != "manifest bower.json does not exist" {
		t.Errorf("Message = %v, want %v", err.Message, "manifest bower.json does not exist")
	}

	expected := "MANIFEST_NOT_FOUND: manifest bower.json does not exist"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("cache miss")
	err := Wrap(ErrCodeResolutionNotReady, cause, "run install first")

	if err.Code != ErrCodeResolutionNotReady {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeResolutionNotReady)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "RESOLUTION_NOT_READY: run install first: cache miss"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeManifestNotFound, "test"),
			code:     ErrCodeManifestNotFound,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeManifestNotFound, "test"),
			code:     ErrCodeResolutionNotReady,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeResolutionNotReady, New(ErrCodeInvalidManifest, "inner"), "outer"),
			code:     ErrCodeResolutionNotReady,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidConfig, "test"), ErrCodeInvalidConfig},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
