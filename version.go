package flightdesk

// Version is the current release. Overridden at build time via
// -ldflags "-X flightdesk.Version=...".
var Version = "0.1.0"
