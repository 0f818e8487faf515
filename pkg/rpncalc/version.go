// Package rpncalc holds build metadata for the rpncalc command.
package rpncalc

// Version is the rpncalc release version. Overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/rpncalc/pkg/rpncalc.Version=...".
var Version = "0.3.0"
