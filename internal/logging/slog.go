package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation   = "operation"
	KeyRoom        = "room"
	KeyMailboxHash = "mailbox_hash"
	KeyRequestID   = "request_id"
	KeyDuration    = "duration"
	KeyStatus      = "status"
	KeyError       = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithRoom returns a logger with the room attribute set. Room addresses are
// directory entries, not personal mailboxes, so they log unhashed.
func WithRoom(logger *slog.Logger, room string) *slog.Logger {
	return logger.With(slog.String(KeyRoom, room))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Duration returns a slog attribute for an operation duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration(KeyDuration, d)
}

// Err returns a slog attribute for an error. If err is nil, returns an
// empty Group attribute that will be omitted from output, so
// Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeMailbox returns a hashed representation of a mailbox address for
// logging purposes. This allows correlation of log entries without exposing
// PII.
func AnonymizeMailbox(mailbox string) string {
	if mailbox == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(strings.ToLower(mailbox)))
	return "mbx:" + hex.EncodeToString(hash[:8])
}

// MailboxHash returns a slog attribute with the anonymized mailbox address.
func MailboxHash(mailbox string) slog.Attr {
	return slog.String(KeyMailboxHash, AnonymizeMailbox(mailbox))
}

// ExtractDomain extracts the domain part from a mailbox address. Useful for
// lower-cardinality logging where the full address would create too many
// unique values.
func ExtractDomain(mailbox string) string {
	if mailbox == "" {
		return ""
	}
	parts := strings.Split(mailbox, "@")
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

// Domain returns a slog attribute for the mailbox domain.
func Domain(mailbox string) slog.Attr {
	return slog.String("mailbox_domain", ExtractDomain(mailbox))
}
