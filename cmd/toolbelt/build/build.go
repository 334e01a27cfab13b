package build

// Populated at link time with -ldflags "-X github.com/sergeii/toolbelt/cmd/toolbelt/build.Version=..."
var (
	Version = "development"
	Commit  = "unknown"
	Time    = "unknown"
)
