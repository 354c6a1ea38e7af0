// Package repl runs the interactive shell of skywalker-cli.
//
// Each input line is split into arguments and handed to an Executor, which
// the command package binds to a CLI app sharing one session. Lines ending
// in "?" list matching commands instead of running. History is kept in
// ~/.skywalker/history.
package repl
