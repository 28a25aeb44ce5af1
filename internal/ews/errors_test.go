package ews

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindAuth, "authentication"},
		{KindAccessDenied, "access-denied"},
		{KindNotFound, "not-found"},
		{KindInvalidArgument, "invalid-argument"},
		{KindTransport, "transport"},
		{KindUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestOpErrorError(t *testing.T) {
	err := &OpError{Op: "FindItem", Mailbox: "room@example.com", Kind: KindAccessDenied,
		Err: fmt.Errorf("ErrorAccessDenied")}
	msg := err.Error()
	if msg != "ews FindItem (mailbox: room@example.com): access-denied: ErrorAccessDenied" {
		t.Errorf("unexpected error message: %q", msg)
	}

	// Without a mailbox the message drops the mailbox part.
	err = &OpError{Op: "GetFolder", Kind: KindTransport, Err: fmt.Errorf("timeout")}
	if msg := err.Error(); msg != "ews GetFolder: transport: timeout" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestOpErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &OpError{Op: "FindItem", Kind: KindTransport, Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	wrapped := fmt.Errorf("opening session: %w", err)
	var oe *OpError
	if !errors.As(wrapped, &oe) {
		t.Fatal("expected errors.As to find the OpError through wrapping")
	}
	if oe.Kind != KindTransport {
		t.Errorf("expected KindTransport, got %v", oe.Kind)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("plain error")); got != KindUnknown {
		t.Errorf("expected KindUnknown for a plain error, got %v", got)
	}

	err := fmt.Errorf("wrapped: %w", &OpError{Op: "FindItem", Kind: KindNotFound, Err: fmt.Errorf("gone")})
	if got := KindOf(err); got != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", got)
	}
	if !IsNotFound(err) {
		t.Error("expected IsNotFound to be true")
	}
	if IsAccessDenied(err) {
		t.Error("expected IsAccessDenied to be false")
	}
}

func TestKindOfResponseCode(t *testing.T) {
	tests := []struct {
		code string
		want Kind
	}{
		{"ErrorAccessDenied", KindAccessDenied},
		{"ErrorImpersonateUserDenied", KindAccessDenied},
		{"ErrorFolderNotFound", KindNotFound},
		{"ErrorItemNotFound", KindNotFound},
		{"ErrorNonExistentMailbox", KindNotFound},
		{"ErrorAccountDisabled", KindAuth},
		{"ErrorServerBusy", KindTransport},
		{"ErrorSomethingNew", KindUnknown},
	}
	for _, tt := range tests {
		if got := kindOfResponseCode(tt.code); got != tt.want {
			t.Errorf("kindOfResponseCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
