// Package confloader loads layered configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. Defaults (a map, usually built from the zero config)
//  2. A YAML file
//  3. Environment variables under a prefix
//
// Command-line flags are applied by the caller on top of the result.
//
// Environment keys use a double underscore for nesting and keep single
// underscores: SKYWALKER_CENTER_ID is center_id and
// SKYWALKER_TRACK__INTERVAL is track.interval.
//
// Watcher reports changes to the configuration file through fsnotify.
package confloader
