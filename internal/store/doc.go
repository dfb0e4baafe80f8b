// Package store provides the session registry and the secrets file.
//
// Sessions live only in memory and expire after an idle period; nothing
// about a trip is ever written to disk. The only file this package touches is
// the passphrase-sealed secrets file holding the inference credential.
//
// The package includes:
//   - In-memory session registry (MemorySessionStore)
//   - Encrypted named secrets (SecretFileStore)
package store
