// Package version pins the version string reported by --version.
package version

// Version is stamped manually at release time.
const Version = "0.1.0"
