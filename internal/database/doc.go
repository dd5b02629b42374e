// Package database provides the in-memory SQLite engine used for grouping
// and counting paper records.
//
// The cleaned dataset is copied into a single "papers" table and every
// summary is a GROUP BY query over it. Nothing is written to disk: the
// database lives for as long as the FrameDB is open.
//
// Design decision: We use SQLite (via modernc.org/sqlite) as the tabular
// engine because:
// 1. GROUP BY already implements the grouping semantics we need, including
//    a single group for NULL keys
// 2. CGO-free implementation allows easy cross-compilation
// 3. ORDER BY with an explicit tie-breaker gives deterministic top-N results
package database
