// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

import _ "embed"

const (
	// Clipforge is the application name used for paths, env prefixes and branding.
	Clipforge = "clipforge"

	// Version is the current semantic version.
	Version = "0.1.0"
)

// Build metadata, injected at link time via -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is the banner shown in the root help.
//
//go:embed ascii.txt
var AsciiArtLogo string

// runtime.GOOS values that need platform specific handling.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
