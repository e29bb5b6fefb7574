// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. Flags can
// also be given as TMPLTBANK_* environment variables.
package cli
