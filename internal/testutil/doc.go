// Package testutil holds helpers shared by the package tests: log capture and
// configuration fixtures for the template bank stage.
package testutil
