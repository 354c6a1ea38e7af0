// Package command defines the skywalker-cli commands with urfave/cli/v2.
//
// One State value holds the process-wide session. In single-command mode
// it lives for one command; in shell mode every line runs against the same
// State, so a login survives until logout or exit.
package command
