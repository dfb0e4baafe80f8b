// Package commands defines the tripplanner CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - serve          Run the JSON HTTP API
//   - shell          Plan interactively on stdin/stdout
//   - secret set     Store a value in the encrypted secrets file
//   - version        Print the build version
//
// # Configuration
//
// Values come from flags, TRIPPLANNER_* environment variables (a .env file in
// the working directory is loaded first), and $HOME/.tripplanner.yaml, in that
// order of precedence. The inference token may instead live in the secrets
// file, unlocked with --passphrase.
package commands
