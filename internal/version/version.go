// internal/version/version.go
package version

// Version is the mindex release string.
const Version = "0.1.0"
