// Package app contains the build tool's application logic: it loads the
// configuration and the stage inputs, runs the template bank stage over a
// fresh workflow graph and writes the resulting manifest. It is decoupled
// from any specific entrypoint like a CLI.
package app
