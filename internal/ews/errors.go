package ews

import (
	"errors"
	"fmt"
)

// Kind classifies failures reported by the Exchange server or the transport
// underneath it. Callers branch on the kind, not on message text.
type Kind int

const (
	// KindUnknown is the zero value for errors that could not be classified.
	KindUnknown Kind = iota

	// KindAuth means the credential itself was rejected (bad password,
	// disabled or locked account). Fatal, never retried past the bounded
	// verification loop.
	KindAuth

	// KindAccessDenied means the authenticated principal lacks permission
	// on the target mailbox or room, including missing impersonation
	// rights. Fatal, surfaced immediately.
	KindAccessDenied

	// KindNotFound means the target calendar folder or item does not
	// exist. Recoverable: callers may absorb it into an empty result.
	KindNotFound

	// KindInvalidArgument means the caller supplied malformed input, such
	// as a window whose start is not before its end.
	KindInvalidArgument

	// KindTransport covers network, TLS, timeout and server-side 5xx
	// failures. Retried only during the initial verification round trip.
	KindTransport
)

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "authentication"
	case KindAccessDenied:
		return "access-denied"
	case KindNotFound:
		return "not-found"
	case KindInvalidArgument:
		return "invalid-argument"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// OpError is the error type returned by all Client operations.
type OpError struct {
	// Op is the EWS operation that failed (e.g. "FindItem", "CreateItem").
	Op string

	// Mailbox is the mailbox the operation targeted, if any.
	Mailbox string

	// Kind classifies the failure.
	Kind Kind

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Mailbox != "" {
		return fmt.Sprintf("ews %s (mailbox: %s): %s: %v", e.Op, e.Mailbox, e.Kind, e.Err)
	}
	return fmt.Sprintf("ews %s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *OpError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindUnknown if err does not carry one.
func KindOf(err error) Kind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err is classified as KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsAccessDenied reports whether err is classified as KindAccessDenied.
func IsAccessDenied(err error) bool {
	return KindOf(err) == KindAccessDenied
}

// responseCodeKinds maps EWS response codes to error kinds. Codes not listed
// here fall back to KindUnknown and are surfaced verbatim.
var responseCodeKinds = map[string]Kind{
	"ErrorAccessDenied":                   KindAccessDenied,
	"ErrorImpersonateUserDenied":          KindAccessDenied,
	"ErrorImpersonationDenied":            KindAccessDenied,
	"ErrorImpersonationFailed":            KindAccessDenied,
	"ErrorMissingEmailAddress":            KindInvalidArgument,
	"ErrorInvalidSmtpAddress":             KindInvalidArgument,
	"ErrorAccountDisabled":                KindAuth,
	"ErrorPasswordExpired":                KindAuth,
	"ErrorPasswordChangeRequired":         KindAuth,
	"ErrorFolderNotFound":                 KindNotFound,
	"ErrorItemNotFound":                   KindNotFound,
	"ErrorNonExistentMailbox":             KindNotFound,
	"ErrorMailboxMoveInProgress":          KindTransport,
	"ErrorMailboxStoreUnavailable":        KindTransport,
	"ErrorServerBusy":                     KindTransport,
	"ErrorInternalServerTransientError":   KindTransport,
	"ErrorExceededConnectionCount":        KindTransport,
	"ErrorInsufficientResources":          KindTransport,
	"ErrorTooManyObjectsOpened":           KindTransport,
	"ErrorTimeoutExpired":                 KindTransport,
	"ErrorConnectionFailedTransientError": KindTransport,
}

// kindOfResponseCode classifies an EWS ResponseCode. "NoError" is not an
// error and must be filtered out before calling this.
func kindOfResponseCode(code string) Kind {
	if k, ok := responseCodeKinds[code]; ok {
		return k
	}
	return KindUnknown
}
