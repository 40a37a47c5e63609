// Package types defines the Topic entity, the link and image encodings,
// the key-value persistence contract, configuration and the standard
// errors shared by the topics store, its backends and the CLI.
package types
