// Package export dumps the application tables of a SQLite database into a
// single JSON bundle.
//
// Every table whose name does not start with an excluded prefix is read
// into memory, one ordered object per row, and the whole bundle is written
// once to sqlite_export_<YYYYMMDD_HHMMSS>.json. The file is written
// atomically: a failed run leaves no partial output behind.
package export
