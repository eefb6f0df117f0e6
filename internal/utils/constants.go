package utils

import "os"

// =============================================================================
// Filesystem Constants
// =============================================================================

const (
	// DefaultSwiftDir is where swift-ring-builder keeps its *.builder files
	DefaultSwiftDir = "/etc/swift/"

	// DefaultOutputPath is the summary file read by the swift exporter
	DefaultOutputPath = "/etc/swift_exporter.json"

	// BuilderFileSuffix is appended to the ring name to form the builder file name
	BuilderFileSuffix = ".builder"

	// OutputFileMode is the permission used when creating the summary file
	OutputFileMode os.FileMode = 0o644
)

// =============================================================================
// Validation Constants
// =============================================================================

const (
	// MaxPort is the highest valid TCP port
	MaxPort = 65535
)
