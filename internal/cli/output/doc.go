// Package output renders command results as a table, JSON or YAML.
//
// Commands pass either a *Table, a value implementing Tabular, or a plain
// struct or slice of structs; the table formatter falls back to reflection
// for the last two. Spinner shows progress on an interactive terminal.
package output
