// Package time holds zone helpers shared by the schedule math and request validation
package time

import (
	"strings"
	"time"

	perr "devstreams/internal/platform/errors"
)

// LoadLocation resolves an IANA zone name. Surrounding quotes and whitespace
// are trimmed since device settings return the name as a JSON string literal.
// An empty name and "Local" are rejected, time.LoadLocation would map them to
// UTC and to the host zone
func LoadLocation(name string) (*time.Location, error) {
	name = strings.Trim(strings.TrimSpace(name), `"`)
	switch {
	case name == "":
		return nil, perr.InvalidArgf("empty time zone")
	case strings.EqualFold(name, "local"):
		return nil, perr.InvalidArgf("time zone %q depends on the host", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unknown time zone %q", name)
	}
	return loc, nil
}
