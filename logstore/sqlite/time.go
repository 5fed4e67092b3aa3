package sqlite

import (
	"time"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// SQLite has no date type: times are stored as fixed width UTC text so that they sort lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, commonerrors.WrapErrorf(commonerrors.ErrMarshalling, err, "could not parse time %q", s)
	}
	return t, nil
}
