package constants

import (
	"path/filepath"
	"strings"
)

// PDFExt is the only extension the collector considers, lowercased sans '.'.
const PDFExt = "pdf"

// PartMarker must appear (case-sensitive) in a report filename for it to be a candidate.
const PartMarker = "MP-"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsReportName reports whether a filename looks like a measurement report:
// it ends with ".pdf" in any case and carries the MP- part marker.
func IsReportName(name string) bool {
	return NormalizeExt(filepath.Ext(name)) == PDFExt && strings.Contains(name, PartMarker)
}
