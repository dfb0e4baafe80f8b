// Package app wires application dependencies for the CLI.
//
// It reads Config from viper, resolves the inference credential, and builds
// the session registry, planning services, inference backend and metrics,
// exposing them via the Wire struct for commands to use.
package app
