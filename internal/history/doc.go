// Package history keeps a record of evaluation runs in a small SQLite
// database under paths.data_dir.
//
// Schema changes ship as numbered files in migrations/ and are applied in
// order on Open. Writes take a file lock next to the database so two eval
// commands finishing together do not interleave their transactions.
package history
