// Package config defines the controller settings and provides helpers to
// load, validate and save them in YAML format.
//
// Every tunable carries a built-in default (task periods, debounce delay,
// temperature threshold, queue capacity), so the controller runs without a
// settings file.
package config
