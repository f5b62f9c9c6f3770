package tabular

import (
	"strconv"
	"strings"
	"time"
)

// Extensions stripped during identity derivation. Case-insensitive,
// recognized spreadsheet formats only.
var spreadsheetExtensions = []string{".xlsx", ".xlsm", ".xls", ".csv"}

// ResolveIdentity decides the document identity for one upload. A
// non-empty explicitID is used verbatim - the named-slot path, for
// clients that want deterministic, overwritable storage for a logical
// dataset name. Otherwise the identity is derived from the file name.
// The bool reports whether the caller supplied the identity.
func ResolveIdentity(explicitID, fileName string, now time.Time) (string, bool) {
	if explicitID != "" {
		return explicitID, true
	}
	return DeriveID(fileName, now), false
}

// DeriveID builds a document identity from a display file name: strip one
// trailing spreadsheet extension, replace every character outside
// [A-Za-z0-9_-] with '_', lowercase, and append the clock's unix-nano
// value as a '_'-separated suffix. The suffix guarantees uniqueness
// across uploads of identically named files without a storage lookup.
// An empty file name yields just the suffix. Never errors.
func DeriveID(fileName string, now time.Time) string {
	slug := sanitize(stripSpreadsheetExt(fileName))
	suffix := strconv.FormatInt(now.UnixNano(), 10)
	if slug == "" {
		return suffix
	}
	return slug + "_" + suffix
}

func stripSpreadsheetExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range spreadsheetExtensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
