// Package config holds the persistent CLI settings (~/.skywalker/cli.yaml).
//
// The file never stores a password or a token. Values are layered by
// confloader (defaults, file, SKYWALKER_* environment) and command-line
// flags are applied on top by the command package.
package config
