// Package filter narrows a record collection by date range, category, and
// region predicates.
package filter

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/okian/vendorboard/internal/domain/model"
)

// Spec is the filter specification: an inclusive date range plus optional
// category and region subsets. An unset criterion passes every record.
type Spec struct {
	From       time.Time
	To         time.Time
	Categories []string
	Regions    []string
}

// Validate reports ErrInvalidRange when From is after To. Callers treat an
// invalid range as "no records match", never as a fatal failure.
func (s Spec) Validate() error {
	if !s.From.IsZero() && !s.To.IsZero() && s.From.After(s.To) {
		return ErrInvalidRange
	}
	return nil
}

// Key returns a canonical string for the spec, usable as a cache key.
// Criteria order does not affect the key.
func (s Spec) Key() string {
	var b strings.Builder
	if !s.From.IsZero() {
		b.WriteString(s.From.Format("2006-01-02"))
	}
	b.WriteByte('|')
	if !s.To.IsZero() {
		b.WriteString(s.To.Format("2006-01-02"))
	}
	b.WriteByte('|')
	b.WriteString(canonical(s.Categories))
	b.WriteByte('|')
	b.WriteString(canonical(s.Regions))
	return b.String()
}

// Apply returns the stable subsequence of records satisfying all active
// predicates. An invalid range yields an empty result; Validate reports it
// separately.
func Apply(_ context.Context, records []model.VendorRecord, spec Spec) []model.VendorRecord {
	if spec.Validate() != nil {
		return []model.VendorRecord{}
	}

	categories := toSet(spec.Categories)
	regions := toSet(spec.Regions)

	out := make([]model.VendorRecord, 0, len(records))
	for _, rec := range records {
		if !spec.From.IsZero() && rec.Date.Before(spec.From) {
			continue
		}
		if !spec.To.IsZero() && rec.Date.After(spec.To) {
			continue
		}
		if categories != nil {
			if _, ok := categories[rec.Category]; !ok {
				continue
			}
		}
		if regions != nil {
			if _, ok := regions[rec.Region]; !ok {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// toSet converts a criterion slice to a lookup set; nil means "match all".
func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// canonical joins values sorted and deduplicated.
func canonical(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		sorted = append(sorted, v)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
