package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/cqroot/openstack-swift-exporter/internal/ringbuilder"
)

func TestServiceError_Error(t *testing.T) {
	err := &ServiceError{
		Code:    "TEST_ERROR",
		Message: "Test error message",
	}

	if err.Error() != "Test error message" {
		t.Errorf("Expected 'Test error message', got '%s'", err.Error())
	}

	err.Err = errors.New("cause")
	if err.Error() != "Test error message: cause" {
		t.Errorf("Expected wrapped message, got '%s'", err.Error())
	}
}

func TestNewServiceError(t *testing.T) {
	err := NewServiceError("ERROR_CODE", "Error message")

	if err.Code != "ERROR_CODE" {
		t.Errorf("Expected code 'ERROR_CODE', got '%s'", err.Code)
	}
	if err.Message != "Error message" {
		t.Errorf("Expected message 'Error message', got '%s'", err.Message)
	}
	if err.Details != nil {
		t.Errorf("Expected nil details, got %v", err.Details)
	}
}

func TestNewServiceErrorWithDetails(t *testing.T) {
	details := map[string]interface{}{
		"ring": "object",
		"path": "/etc/swift/object.builder",
	}

	err := NewServiceErrorWithDetails(CodeSourceMalformed, "ring builder is malformed", details)

	if err.Code != CodeSourceMalformed {
		t.Errorf("Expected code '%s', got '%s'", CodeSourceMalformed, err.Code)
	}
	if err.Details["ring"] != "object" {
		t.Errorf("Expected ring detail 'object', got %v", err.Details["ring"])
	}

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("Marshal failed: %v", jerr)
	}
	if !strings.Contains(string(data), `"code":"SOURCE_MALFORMED"`) {
		t.Errorf("Unexpected JSON: %s", data)
	}
}

func TestWrapSourceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{
			name: "unavailable",
			err:  fmt.Errorf("%w: /etc/swift/account.builder: %w", ringbuilder.ErrSourceUnavailable, os.ErrNotExist),
			code: CodeSourceUnavailable,
		},
		{
			name: "malformed",
			err:  &ringbuilder.FieldError{Slot: 3, Field: "ip", Msg: "missing"},
			code: CodeSourceMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := wrapSourceError("account", "/etc/swift/account.builder", tt.err)
			wrapped := fmt.Errorf("run failed: %w", se)

			if got := ErrorCode(wrapped); got != tt.code {
				t.Errorf("ErrorCode() = %s, want %s", got, tt.code)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("cause should stay reachable through errors.Is")
			}
			if se.Details["ring"] != "account" {
				t.Errorf("missing ring detail: %v", se.Details)
			}
		})
	}

	if ErrorCode(errors.New("plain")) != "" {
		t.Error("plain errors have no code")
	}
}
