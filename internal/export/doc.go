// Package export writes game events as flat CSV or JSON files.
//
// Output paths may start with ~/ and missing parent directories are created.
// The path "-" writes to standard output, which keeps stdout clean for piping
// since all logging goes to stderr.
package export
