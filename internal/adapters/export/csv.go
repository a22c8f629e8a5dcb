// Package export serializes filtered record collections to CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/pkg/metrics"
)

// dateLayout is the calendar date format used in exports.
const dateLayout = "2006-01-02"

// Header names every VendorRecord field plus the vendor's overall score.
// Column order is fixed so exports are diffable across runs.
var header = []string{
	"Vendor",
	"Category",
	"Region",
	"Date",
	"OnTime",
	"Quality",
	"Spend",
	"Compliance",
	"LeadTimeDays",
	"OverallScore",
}

// Header returns a copy of the CSV header row.
func Header() []string {
	out := make([]string, len(header))
	copy(out, header)
	return out
}

// WriteCSV writes records as UTF-8 CSV to w: a header row, then one row per
// record with the owning vendor's overall score appended. An empty record
// set produces a header-only file, not an error.
func WriteCSV(_ context.Context, w io.Writer, records []model.VendorRecord, summaries []model.VendorSummary) error {
	scores := make(map[string]float64, len(summaries))
	for _, s := range summaries {
		scores[s.Vendor] = s.OverallScore
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Vendor,
			rec.Category,
			rec.Region,
			rec.Date.Format(dateLayout),
			strconv.FormatBool(rec.OnTime),
			formatFloat(rec.Quality),
			formatFloat(rec.Spend),
			formatFloat(rec.Compliance),
			formatFloat(rec.LeadTimeDays),
			formatFloat(scores[rec.Vendor]),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	metrics.RecordExportRequest()
	metrics.RecordExportRows(len(records))
	return nil
}

// formatFloat renders values with enough precision to round-trip.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
