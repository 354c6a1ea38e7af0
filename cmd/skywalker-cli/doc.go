// Package main provides the entry point for skywalker-cli.
//
// The CLI signs in to a SkyWalker indoor positioning server and provides:
//
//   - Session commands (login, logout, whoami)
//   - Receiver and tag listings for the active center
//   - Beacon registration for this device
//   - One-shot positions and continuous tracking
//   - Configuration management
//
// Usage:
//
//	skywalker-cli [global flags] command [flags]
//	skywalker-cli -s 10.0.0.5:8000 -u alice -c 7 tags list
//	skywalker-cli -o json position 12 15
//	skywalker-cli track --all --metrics-listen :9100
//
// The CLI supports both single-command mode and an interactive shell that
// keeps one session across commands.
package main
