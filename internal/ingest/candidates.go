package ingest

import (
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/joseph-ayodele/mpstats/constants"
	"github.com/joseph-ayodele/mpstats/internal/common"
)

// ListCandidates reads folder (non-recursive) and returns the report
// filenames to process, sorted ascending. A non-blank filter keeps only names
// containing it, ignoring case. scanned is the number of entries read.
func ListCandidates(folder, filter string) (names []string, scanned uint32, err error) {
	if strings.TrimSpace(folder) == "" {
		return nil, 0, common.FolderNotFound(folder, errors.New("folder path is empty"))
	}
	entries, err := os.ReadDir(folder)
	if err != nil {
		// missing, not a directory, or permission denied
		return nil, 0, common.FolderNotFound(folder, err)
	}

	needle := strings.ToUpper(strings.TrimSpace(filter))
	for _, e := range entries {
		scanned++
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !constants.IsReportName(name) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToUpper(name), needle) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, scanned, nil
}
