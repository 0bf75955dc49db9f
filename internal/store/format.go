package store

import (
	"time"

	"github.com/rpggio/mockdata/internal/domain/project"
)

// DisplayTimeLayout is how createdAt is shown to users.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// PreviewURL returns the address the backend serves a record's mock on.
func PreviewURL(base string, prj *project.Project, recordPath string) string {
	return base + "/mock/" + prj.ID + prj.Path + recordPath
}

// FormatCreatedAt rewrites an RFC 3339 timestamp into DisplayTimeLayout in loc.
// Values that do not parse are returned unchanged.
func FormatCreatedAt(raw string, loc *time.Location) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	return t.In(loc).Format(DisplayTimeLayout)
}
