// Package client is the SkyWalker server access facade.
//
// A Facade holds a reference to the process-wide domain.Session and
// exposes one asynchronous operation per server capability:
//
//   - transport.go: request building, auth headers, body reading
//   - classify.go: mapping of failures onto domain.ErrorKind
//   - decode.go: per-endpoint response decoders
//   - result.go: Result and Await
//   - facade.go: the operations and the generic dispatch helper
//
// Every operation returns a channel that receives exactly one Result and
// is then closed. Authenticated operations panic when the session is not
// logged in; that is a caller bug, not a server condition.
package client
