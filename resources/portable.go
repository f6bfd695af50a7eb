package resources

import (
	"os"
	"path/filepath"
)

const portableMarker = "portable.txt"

// portablePath is set by checkPortable()
var portablePath string

// checkPortable returns true if the portable.txt file is alongside the
// program binary
func checkPortable() bool {
	ex, err := os.Executable()
	if err != nil {
		return false
	}
	dir := filepath.Dir(ex)

	if _, err := os.Stat(filepath.Join(dir, portableMarker)); err != nil {
		return false
	}

	portablePath = filepath.Join(dir, "TWIsim_UserData")
	return true
}
