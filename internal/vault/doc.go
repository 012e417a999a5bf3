// Package vault is the local encrypted password store.
//
// # Storage
//
// Two files live in the homebase config directory:
//
//	vault.key   32 random bytes, base64, mode 0600, created on first use
//	vault.enc   the whole document, sealed with NaCl secretbox
//
// The document file is a 24-byte random nonce followed by the secretbox
// output. Every write re-encrypts the complete document under a new nonce.
// Losing vault.key makes vault.enc unreadable; there is no recovery or
// rotation.
//
// # Concurrency
//
// Load, change, Save is not locked. Two processes that save at the same time
// race and the last one wins for the whole document.
//
// # Heuristics
//
// ScanForPasswordFields and AutofillConfig use regular expressions to spot
// password fields in text files. They are heuristics: the scan reports the
// first pattern that matches a file, and its confidence is derived from that
// pattern's position in the list.
package vault
