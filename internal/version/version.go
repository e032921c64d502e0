package version

// Version is the semantic version of the connector, overridable at build
// time with -ldflags "-X .../internal/version.Version=...".
var Version = "0.3.0"
