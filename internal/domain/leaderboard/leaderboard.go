// Package leaderboard ranks vendor summaries into top/bottom slices.
package leaderboard

import (
	"context"
	"sort"

	"github.com/okian/vendorboard/internal/domain/model"
)

// DefaultSize is the leaderboard slice size when none is configured.
const DefaultSize = 5

// Board holds the ranked top and bottom slices of a summary collection.
// Top is descending by overall score, Bottom ascending; both break ties on
// vendor id ascending so rankings are deterministic.
type Board struct {
	Top    []model.VendorSummary `json:"top"`
	Bottom []model.VendorSummary `json:"bottom"`
}

// Build returns the top-n and bottom-n vendors by overall score. Fewer than
// n vendors returns all available, not an error. Top and Bottom are
// disjoint whenever the vendor count exceeds n.
func Build(_ context.Context, summaries []model.VendorSummary, n int) Board {
	if n <= 0 {
		n = DefaultSize
	}

	desc := make([]model.VendorSummary, len(summaries))
	copy(desc, summaries)
	sort.SliceStable(desc, func(i, j int) bool {
		if desc[i].OverallScore != desc[j].OverallScore {
			return desc[i].OverallScore > desc[j].OverallScore
		}
		return desc[i].Vendor < desc[j].Vendor
	})

	asc := make([]model.VendorSummary, len(summaries))
	copy(asc, summaries)
	sort.SliceStable(asc, func(i, j int) bool {
		if asc[i].OverallScore != asc[j].OverallScore {
			return asc[i].OverallScore < asc[j].OverallScore
		}
		return asc[i].Vendor < asc[j].Vendor
	})

	if n > len(summaries) {
		n = len(summaries)
	}

	return Board{
		Top:    desc[:n],
		Bottom: asc[:n],
	}
}
