//go:build !release

package resources

const baseDir = ".twisim"

func resourcePath() (string, error) {
	return baseDir, nil
}
