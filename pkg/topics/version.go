// Package topics holds release metadata for the topics module.
package topics

// Version is the current release of the topics CLI and library.
const Version = "0.1.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/mesh-intelligence/topics"
