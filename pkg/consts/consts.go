package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultEnvFile is the configuration file used when no --env flag is given
	DefaultEnvFile = ".env"

	// LastEnvMarker holds the filename of the previously selected environment file
	LastEnvMarker = ".last_env"
)
