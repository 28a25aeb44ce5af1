// Package logging provides structured logging utilities for roomcal.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard library's
// slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "FindItem")
//	logger.Info("listing events", logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("session opened", logging.MailboxHash(mailbox))
//
// # Security Considerations
//
// Mailbox addresses identify people; they are hashed before logging so log
// entries stay correlatable without leaking PII. Credentials and secrets
// are never logged.
package logging
