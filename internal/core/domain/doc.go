// Package domain defines the core domain models for SkyWalker.
//
// Domain models are plain values and small concurrency-safe holders
// without any IO dependencies or framework coupling. This package contains:
//
//   - Token: server-issued opaque credential bound to a server URL
//   - Session: the single process-wide login state (token + active center)
//   - Center, LandmarkDirectory: a site and its cached landmark index
//   - Landmark, Tag, Position, BeaconFrame: wire-level values
//   - Errors: the closed ErrorKind taxonomy and its error type
//
// Landmarks are called "receivers" or "rdhubs" by the server API.
package domain
