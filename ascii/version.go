package ascii

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the controller software version, reported by ~VERSION in
// MAJOR.MINOR.REVISION.BUILD form.
type Version struct {
	Major, Minor, Revision, Build int
}

func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return Version{}, fmt.Errorf("malformed version string %q", s)
	}
	var v Version
	for i, dst := range []*int{&v.Major, &v.Minor, &v.Revision, &v.Build} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return Version{}, fmt.Errorf("malformed version string %q: %w", s, err)
		}
		*dst = n
	}
	return v, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Revision, v.Build)
}
