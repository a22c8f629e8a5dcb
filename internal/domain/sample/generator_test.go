package sample_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/vendorboard/internal/domain/sample"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator_Generate(t *testing.T) {
	Convey("Given a generator with default options", t, func() {
		gen := sample.New()

		Convey("When generating the dataset", func() {
			records := gen.Generate(context.Background())

			Convey("Then it should produce one record per vendor per month", func() {
				So(len(records), ShouldEqual, 15*6)
			})

			Convey("And every record should satisfy the field invariants", func() {
				start, end := gen.Span()
				for _, rec := range records {
					So(rec.Vendor, ShouldNotBeBlank)
					So(rec.Quality, ShouldBeBetweenOrEqual, 0, 100)
					So(rec.Compliance, ShouldBeBetweenOrEqual, 0, 100)
					So(rec.Spend, ShouldBeGreaterThan, 0)
					So(rec.LeadTimeDays, ShouldBeGreaterThan, 0)
					So(rec.Date.Before(start), ShouldBeFalse)
					So(rec.Date.After(end), ShouldBeFalse)
				}
			})

			Convey("And each vendor should keep a single category and region", func() {
				cats := make(map[string]string)
				regions := make(map[string]string)
				for _, rec := range records {
					if c, ok := cats[rec.Vendor]; ok {
						So(rec.Category, ShouldEqual, c)
					}
					if r, ok := regions[rec.Vendor]; ok {
						So(rec.Region, ShouldEqual, r)
					}
					cats[rec.Vendor] = rec.Category
					regions[rec.Vendor] = rec.Region
				}
				So(len(cats), ShouldEqual, 15)
			})
		})

		Convey("When generating twice with the same seed", func() {
			first := gen.Generate(context.Background())
			second := sample.New().Generate(context.Background())

			Convey("Then both runs should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When generating with a different seed", func() {
			first := gen.Generate(context.Background())
			other := sample.New(sample.WithSeed(7)).Generate(context.Background())

			Convey("Then the roster and size should match but values differ", func() {
				So(len(other), ShouldEqual, len(first))
				So(other, ShouldNotResemble, first)
			})
		})
	})
}

func TestGenerator_Options(t *testing.T) {
	Convey("Given a generator with custom options", t, func() {
		start := time.Date(2024, time.March, 17, 10, 0, 0, 0, time.UTC)
		gen := sample.New(
			sample.WithSeed(99),
			sample.WithVendorCount(3),
			sample.WithStartMonth(start),
			sample.WithMonthCount(2),
		)

		Convey("When inspecting the roster", func() {
			names := gen.VendorNames()

			Convey("Then it should list the configured vendors", func() {
				So(names, ShouldResemble, []string{"Vendor 1", "Vendor 2", "Vendor 3"})
			})
		})

		Convey("When inspecting the span", func() {
			from, to := gen.Span()

			Convey("Then the start should be truncated to the month", func() {
				So(from.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
				So(to.Equal(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})
		})

		Convey("When generating", func() {
			records := gen.Generate(context.Background())

			Convey("Then size should follow the configured span", func() {
				So(len(records), ShouldEqual, 3*2)
			})
		})

		Convey("When options carry invalid values", func() {
			g := sample.New(
				sample.WithVendorCount(0),
				sample.WithMonthCount(-1),
				sample.WithStartMonth(time.Time{}),
			)

			Convey("Then defaults should be kept", func() {
				So(len(g.VendorNames()), ShouldEqual, 15)
				from, _ := g.Span()
				So(from.Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)), ShouldBeTrue)
			})
		})
	})
}
