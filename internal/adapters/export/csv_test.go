package export_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/okian/vendorboard/internal/adapters/export"
	"github.com/okian/vendorboard/internal/domain/kpi"
	"github.com/okian/vendorboard/internal/domain/sample"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWriteCSV(t *testing.T) {
	Convey("Given the generated dataset with summaries", t, func() {
		records := sample.New().Generate(context.Background())
		summaries := kpi.New().Summarize(context.Background(), records)

		Convey("When exporting the full set", func() {
			var buf bytes.Buffer
			err := export.WriteCSV(context.Background(), &buf, records, summaries)
			So(err, ShouldBeNil)

			rows, parseErr := csv.NewReader(&buf).ReadAll()
			So(parseErr, ShouldBeNil)

			Convey("Then the header should name every field", func() {
				So(rows[0], ShouldResemble, export.Header())
			})

			Convey("And the row count should round-trip", func() {
				So(len(rows)-1, ShouldEqual, len(records))
			})

			Convey("And field values should round-trip", func() {
				for i, rec := range records {
					row := rows[i+1]
					So(row[0], ShouldEqual, rec.Vendor)
					So(row[1], ShouldEqual, rec.Category)
					So(row[2], ShouldEqual, rec.Region)
					So(row[3], ShouldEqual, rec.Date.Format("2006-01-02"))
					So(row[4], ShouldEqual, strconv.FormatBool(rec.OnTime))

					quality, err := strconv.ParseFloat(row[5], 64)
					So(err, ShouldBeNil)
					So(quality, ShouldAlmostEqual, rec.Quality)

					spend, err := strconv.ParseFloat(row[6], 64)
					So(err, ShouldBeNil)
					So(spend, ShouldAlmostEqual, rec.Spend)
				}
			})

			Convey("And every row should carry its vendor's overall score", func() {
				scores := make(map[string]float64)
				for _, s := range summaries {
					scores[s.Vendor] = s.OverallScore
				}
				for i, rec := range records {
					score, err := strconv.ParseFloat(rows[i+1][9], 64)
					So(err, ShouldBeNil)
					So(score, ShouldAlmostEqual, scores[rec.Vendor])
				}
			})
		})

		Convey("When exporting an empty set", func() {
			var buf bytes.Buffer
			err := export.WriteCSV(context.Background(), &buf, nil, nil)
			So(err, ShouldBeNil)

			Convey("Then the file should be header-only, not a failure", func() {
				rows, parseErr := csv.NewReader(&buf).ReadAll()
				So(parseErr, ShouldBeNil)
				So(len(rows), ShouldEqual, 1)
				So(rows[0], ShouldResemble, export.Header())
			})
		})
	})
}
