// Package store provides the SQLite-backed named-period index.
//
// The index holds two tables:
//   - imports: one row per import batch (source file, authority, counts)
//   - periods: period labels per authority with their year bounds
//
// # Invariants
//
// Label identity: a period is identified by (authority_id, label_key). The
// key is computed by the caller; the store never derives it. Re-importing a
// label under the same authority keeps the first definition (ON CONFLICT DO
// NOTHING), so imports are idempotent.
//
// Ordering: every listing query carries an explicit ORDER BY so results are
// identical across runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
