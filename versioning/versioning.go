package versioning

// Set with -ldflags "-X github.com/Ethernal-Tech/bridge-status-tracker/versioning.Commit=..."
var (
	Version   = "dev"
	Commit    string
	Branch    string
	BuildTime string
)
