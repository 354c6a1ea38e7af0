// Package shutdown runs cleanup hooks when the process is interrupted.
//
// Hooks run in reverse registration order under a shared deadline, so a
// component registered last (for example a poller that depends on a
// server) stops first.
package shutdown
