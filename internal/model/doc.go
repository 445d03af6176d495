// Package model defines the value types of the water sort puzzle and the
// error types shared by the CLI.
//
// A Container is a bounded stack of Color units. Containers know whether
// they are full, empty or complete (empty, or full of a single color); the
// rules for moving units between containers live in package board.
//
// The package also defines exit codes (ExitCode) and an error type
// (CLIError) that carries an exit code for OS process exit handling.
package model
