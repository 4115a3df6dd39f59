// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the per-command execution paths, decoupled
// from the CLI entrypoint.
package app
