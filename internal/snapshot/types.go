// Package snapshot collects one size observation per resource per tick.
package snapshot

import (
	"maps"
	"strconv"
	"strings"

	"github.com/hugo-lorenzo-mato/waitfile/internal/probe"
)

// Snapshot maps each resource to the size observed for it during one tick.
// A size of probe.Absent means the resource could not be stat'ed.
type Snapshot map[string]int64

// Equal reports whether two snapshots hold the same resources and sizes.
func (s Snapshot) Equal(other Snapshot) bool {
	return maps.Equal(s, other)
}

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// Size returns the recorded size for resource. Resources missing from the
// snapshot report probe.Absent.
func (s Snapshot) Size(resource string) int64 {
	size, ok := s[resource]
	if !ok {
		return probe.Absent
	}
	return size
}

// Available reports whether resource had a known, non-negative size.
func (s Snapshot) Available(resource string) bool {
	return s.Size(resource) >= 0
}

// Format renders the snapshot as "name=size" pairs in the given order.
func (s Snapshot) Format(order []string) string {
	var b strings.Builder
	for i, resource := range order {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(resource)
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(s.Size(resource), 10))
	}
	return b.String()
}
