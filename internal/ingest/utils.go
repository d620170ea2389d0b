package ingest

import (
	"path/filepath"
	"strings"

	"github.com/zzstudio/invoicedesk/constants"
)

// AllowedExt checks if a file extension is in the allowed set
// (pdf/ofd/png/jpg/jpeg/bmp by default).
func AllowedExt(ext string) bool {
	_, ok := constants.AllowedExtensions[constants.NormalizeExt(ext)]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
