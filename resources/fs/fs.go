// Package fs wraps the file system functions used by the resources
// package.
package fs

import "os"

// MkdirAll is the same as os.MkdirAll()
func MkdirAll(pth string, perm os.FileMode) error {
	return os.MkdirAll(pth, perm)
}
