// Package store keeps named arrays in a SQLite archive (.ndb).
//
// Each row of the arrays table holds one array encoded as an .npy blob,
// with its dtype and shape duplicated into text columns so an archive can
// be inspected with the sqlite3 shell:
//
//	sqlite> SELECT name, dtype, shape FROM arrays;
//	a|int64|(2, 3)
//	b|int64|(3,)
//
// # Database Configuration
//
//   - WAL mode for archives opened read-write
//   - synchronous=NORMAL
//   - 5-second busy timeout
//   - schema version tracked in PRAGMA user_version
//
// The command line only reads archives, through OpenReadOnly. Put exists
// for building archives from Go code and test fixtures.
package store
