package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithRoom(t *testing.T) {
	logger := slog.Default()
	result := WithRoom(logger, "room.aurora@example.com")
	if result == nil {
		t.Error("WithRoom returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("FindItem")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "FindItem" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "FindItem")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != "success" {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), "success")
	}
}

func TestDurationAttr(t *testing.T) {
	attr := Duration(250 * time.Millisecond)
	if attr.Key != KeyDuration {
		t.Errorf("Duration key = %q, want %q", attr.Key, KeyDuration)
	}
	if attr.Value.Duration() != 250*time.Millisecond {
		t.Errorf("Duration value = %v, want %v", attr.Value.Duration(), 250*time.Millisecond)
	}
}

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "boom" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "boom")
	}
}

func TestErr_Nil(t *testing.T) {
	attr := Err(nil)
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty", attr.Key)
	}
	// An empty group is elided by slog handlers.
	if attr.Value.Kind() != slog.KindGroup {
		t.Errorf("Err(nil) kind = %v, want group", attr.Value.Kind())
	}
}

func TestAnonymizeMailbox(t *testing.T) {
	hash := AnonymizeMailbox("alice@example.com")
	if !strings.HasPrefix(hash, "mbx:") {
		t.Errorf("AnonymizeMailbox = %q, want mbx: prefix", hash)
	}
	if strings.Contains(hash, "alice") {
		t.Errorf("AnonymizeMailbox leaked the address: %q", hash)
	}
	if len(hash) != len("mbx:")+16 {
		t.Errorf("AnonymizeMailbox length = %d, want %d", len(hash), len("mbx:")+16)
	}
}

func TestAnonymizeMailbox_Stable(t *testing.T) {
	a := AnonymizeMailbox("alice@example.com")
	b := AnonymizeMailbox("Alice@Example.COM")
	if a != b {
		t.Errorf("case variants hash differently: %q vs %q", a, b)
	}
	if a == AnonymizeMailbox("bob@example.com") {
		t.Error("distinct addresses produced the same hash")
	}
}

func TestAnonymizeMailbox_Empty(t *testing.T) {
	if got := AnonymizeMailbox(""); got != "" {
		t.Errorf("AnonymizeMailbox(\"\") = %q, want empty", got)
	}
}

func TestMailboxHashAttr(t *testing.T) {
	attr := MailboxHash("alice@example.com")
	if attr.Key != KeyMailboxHash {
		t.Errorf("MailboxHash key = %q, want %q", attr.Key, KeyMailboxHash)
	}
	if attr.Value.String() != AnonymizeMailbox("alice@example.com") {
		t.Error("MailboxHash value should match AnonymizeMailbox")
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		mailbox string
		want    string
	}{
		{"alice@example.com", "example.com"},
		{"room.aurora@rooms.example.com", "rooms.example.com"},
		{"not-an-address", ""},
		{"a@b@c", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractDomain(tt.mailbox); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.mailbox, got, tt.want)
		}
	}
}

func TestDomainAttr(t *testing.T) {
	attr := Domain("alice@example.com")
	if attr.Value.String() != "example.com" {
		t.Errorf("Domain value = %q, want %q", attr.Value.String(), "example.com")
	}
}
