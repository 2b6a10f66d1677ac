// Package store provides file-based persistence for the wizard session.
//
// The CLI runs one wizard operation per process, so the current session is
// checkpointed to session.json under the configured home directory between
// runs. Starting a new session deletes the file; nothing is kept across
// sessions.
//
// With a passphrase the snapshot is sealed: a key is derived with scrypt and
// the JSON is encrypted with ChaCha20-Poly1305. Writes go through a temp file
// and an atomic rename. All methods are concurrency-safe via internal locking.
package store
