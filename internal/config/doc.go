// Package config loads y2km tool settings from YAML or TOML files.
//
// Files are checked against a closed CUE schema before decoding, so a
// misspelled key or an out-of-range value is reported with the offending
// path instead of being silently ignored. Fields absent from the file keep
// the values from Default.
package config
