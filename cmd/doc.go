// Package cmd implements the command-line interface for roomcal.
//
// This package provides the following commands:
//   - check: Verify connectivity and credentials against the Exchange server
//   - list: List calendar events of a mailbox in a time window
//   - availability: Check whether a room is free in a time window
//   - book: Book a meeting room
//   - schedules: Collect the day schedule of every configured room
//   - version: Display version information
//
// The check command is the default command when no subcommand is specified.
package cmd
