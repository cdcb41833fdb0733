// Package store provides SQLite-backed durable storage for vault records.
//
// A Store is constructed unopened and must be opened explicitly before use.
// Every operation on an unopened, failed, or closed store returns an *Error
// with ErrCodeNotReady and leaves the database untouched.
//
// # Records
//
//   - Identity: INTEGER PRIMARY KEY AUTOINCREMENT. Identities increase
//     monotonically and are never reused, not even after Clear.
//   - Size is computed from the stored bytes; callers never supply it.
//   - Checksum is the hex BLAKE3-256 digest of the data, verified on every read.
//   - No update statement exists: a record is inserted once and later deleted.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - a single connection, so SQLite serializes all writers
package store
