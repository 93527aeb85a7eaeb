// Package config loads the editor settings.
//
// Settings live in a single file, TOML or YAML chosen by extension. Values
// missing from the file keep their defaults, and the merged result is
// validated before use. A Watcher reloads the file whenever it changes on
// disk so a running editor can pick up new settings.
//
// # Example
//
//	# textcore.toml
//	[editor]
//	tab_width = 8
//	wrap_width = 100
//
//	[log]
//	level = "debug"
package config
