// Package task implements the task store and its line-oriented
// persistence format.
//
// The tasks file (tasks.txt) holds one task per line, fields separated
// by ";":
//
//	Buy milk;01.05.2024;0
//	Pay rent;03.05.2024;0;home
//	DONE:Walk dog;29.04.2024;1;home
//
// The third field is the completed flag ("1" or "0"); a fourth field,
// when present, is the category. Completed tasks carry the "DONE:"
// marker and are kept in a separate append-only sequence. Active tasks
// are written first, completed tasks after, each in their stored
// order, and the file is rewritten in full on every save.
//
// Known format limitation: field values containing ";" are not
// escaped. A title or category with a ";" in it will not round-trip;
// escaping is deliberately not added because it would break existing
// files.
//
// # Deadlines
//
// Deadlines are "DD.MM.YYYY" strings. Sorting by deadline derives a
// YYYYMMDD integer key from the string (single-digit day and month are
// zero-padded); no calendar validation is performed. A deadline that
// does not split into three numeric parts fails the key derivation,
// which aborts a deadline sort instead of silently misordering.
//
// # Validation
//
// Validate supports two modes, used by the doctor command:
//
// 1. JSON Schema validation (when a schema file is provided):
//   - records decoded from the tasks file are checked against the
//     schema (draft-2020-12)
//
// 2. Minimal fallback validation (when no schema is available):
//   - non-empty title, DD.MM.YYYY deadline shape, known flag values
//   - no external schema file required
package task
