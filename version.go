package skema

// Version is the module version reported by the command line tool. Release
// builds override it with -ldflags "-X github.com/reoring/skema.Version=...".
var Version = "0.1.0-dev"
