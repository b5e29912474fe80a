package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorFormat(t *testing.T) {
	err := NewDomainError("Bridge.Invoke", ErrAgentNotFound, "agent 'ghost'")
	want := "Bridge.Invoke: agent 'ghost': agent not found"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDomainErrorFormatNoDetail(t *testing.T) {
	err := NewDomainError("Registry.Load", ErrSourceUnavailable, "")
	want := "Registry.Load: document source unavailable"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	err := NewDomainError("Parser.Parse", ErrParseFailure, "bad encoding")
	if !errors.Is(err, ErrParseFailure) {
		t.Error("errors.Is should match ErrParseFailure")
	}
}

func TestDomainErrorAs(t *testing.T) {
	err := NewDomainError("Bridge.Invoke", ErrInvalidTask, "")
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatal("errors.As should match *DomainError")
	}
	if de.Op != "Bridge.Invoke" {
		t.Errorf("Op = %q, want %q", de.Op, "Bridge.Invoke")
	}
}

func TestWrapOpNil(t *testing.T) {
	if WrapOp("op", nil) != nil {
		t.Error("WrapOp(nil) should return nil")
	}
}

func TestErrorCodeOf(t *testing.T) {
	assert.Equal(t, CodeAgentNotFound, ErrorCodeOf(ErrAgentNotFound))
	assert.Equal(t, CodeInvalidTask, ErrorCodeOf(ErrInvalidTask))
	assert.Equal(t, CodeSourceUnavailable, ErrorCodeOf(ErrSourceUnavailable))

	de := NewDomainError("Registry.Load", ErrSourceUnavailable, "missing dir")
	assert.Equal(t, CodeSourceUnavailable, ErrorCodeOf(de))

	wrapped := fmt.Errorf("outer: %w", ErrTrackerFault)
	assert.Equal(t, CodeTrackerFault, ErrorCodeOf(wrapped))

	assert.Equal(t, CodeUnknown, ErrorCodeOf(errors.New("mystery")))
	assert.Equal(t, CodeUnknown, ErrorCodeOf(nil))
}
