package sqlite

import (
	"path/filepath"
	"strings"
)

// DriverName is the database/sql name registered by modernc.org/sqlite.
const DriverName = "sqlite"

var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// DSN builds a modernc URI for path. Writers take the lock at BEGIN so a
// concurrent reader can never interleave with the rebuild; readers open the
// file with mode=ro and can never create it.
func DSN(path string, readOnly bool) string {
	var b strings.Builder
	b.WriteString("file:")
	b.WriteString(uriPathEscaper.Replace(filepath.ToSlash(path)))
	b.WriteString("?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if readOnly {
		b.WriteString("&mode=ro")
	} else {
		b.WriteString("&_txlock=immediate")
	}
	return b.String()
}

func dbNameFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "main"
	}
	return name
}
