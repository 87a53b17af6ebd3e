// Package filesystem provides operating-system backed filesystem collaborators.
package filesystem

import (
	"io/fs"
	"os"
)

// OSFileSystem implements filesystem queries using the operating system primitives.
type OSFileSystem struct{}

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}
