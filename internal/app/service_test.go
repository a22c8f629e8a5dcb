package service_test

import (
	"context"
	"testing"
	"time"

	service "github.com/okian/vendorboard/internal/app"
	"github.com/okian/vendorboard/internal/domain/filter"
	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithSeed(7),
			service.WithVendorCount(4),
			service.WithMonthCount(3),
			service.WithLeaderboardSize(2),
			service.WithSnapshotCacheSize(8),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		// Ensure service is stopped after test
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
			})

			Convey("And the default dataset should be populated", func() {
				records, recErr := svc.Records(ctx, "")
				So(recErr, ShouldBeNil)
				So(len(records), ShouldEqual, 15*6)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})

			Convey("And stopping again should be a no-op", func() {
				So(svc.Stop, ShouldNotPanic)
			})
		})
	})
}

func TestService_Filtered(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When filtering with an empty spec", func() {
			records, warning, err := svc.Filtered(ctx, "", filter.Spec{})

			Convey("Then it should return every record without warning", func() {
				So(err, ShouldBeNil)
				So(warning, ShouldBeEmpty)
				So(len(records), ShouldEqual, 15*6)
			})
		})

		Convey("When filtering with an inverted date range", func() {
			spec := filter.Spec{
				From: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			}
			records, warning, err := svc.Filtered(ctx, "", spec)

			Convey("Then it should warn and return an empty set, not an error", func() {
				So(err, ShouldBeNil)
				So(warning, ShouldNotBeEmpty)
				So(records, ShouldNotBeNil)
				So(records, ShouldBeEmpty)
			})
		})

		Convey("When filtering by category", func() {
			spec := filter.Spec{Categories: []string{"Packaging"}}
			records, warning, err := svc.Filtered(ctx, "", spec)

			Convey("Then only that category should remain", func() {
				So(err, ShouldBeNil)
				So(warning, ShouldBeEmpty)
				for _, rec := range records {
					So(rec.Category, ShouldEqual, "Packaging")
				}
			})
		})

		Convey("When using an unknown session id", func() {
			_, _, err := svc.Filtered(ctx, "no-such-session", filter.Spec{})

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Leaderboard(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When requesting the default leaderboard", func() {
			board, warning, err := svc.Leaderboard(ctx, "", filter.Spec{}, 0)

			Convey("Then it should hold five vendors per slice", func() {
				So(err, ShouldBeNil)
				So(warning, ShouldBeEmpty)
				So(len(board.Top), ShouldEqual, 5)
				So(len(board.Bottom), ShouldEqual, 5)
			})

			Convey("And the top slice should be ordered by descending score", func() {
				So(err, ShouldBeNil)
				for i := 1; i < len(board.Top); i++ {
					So(board.Top[i-1].OverallScore, ShouldBeGreaterThanOrEqualTo, board.Top[i].OverallScore)
				}
			})
		})

		Convey("When requesting a custom size", func() {
			board, _, err := svc.Leaderboard(ctx, "", filter.Spec{}, 3)

			Convey("Then both slices should honor it", func() {
				So(err, ShouldBeNil)
				So(len(board.Top), ShouldEqual, 3)
				So(len(board.Bottom), ShouldEqual, 3)
			})
		})
	})
}

func TestService_Trend(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When requesting a known vendor's trend", func() {
			points, warning, err := svc.Trend(ctx, "", "Vendor 1", filter.Spec{})

			Convey("Then it should return one point per month", func() {
				So(err, ShouldBeNil)
				So(warning, ShouldBeEmpty)
				So(len(points), ShouldEqual, 6)
			})

			Convey("And months should ascend", func() {
				So(err, ShouldBeNil)
				for i := 1; i < len(points); i++ {
					So(points[i].Month.After(points[i-1].Month), ShouldBeTrue)
				}
			})
		})

		Convey("When requesting an unknown vendor's trend", func() {
			_, _, err := svc.Trend(ctx, "", "Vendor 999", filter.Spec{})

			Convey("Then it should report the unknown vendor", func() {
				So(err, ShouldEqual, model.ErrUnknownVendor)
			})
		})
	})
}

func TestService_Sessions(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When creating a session with an explicit seed", func() {
			seed := int64(7)
			meta, err := svc.CreateSession(ctx, &seed)

			Convey("Then the session should be addressable", func() {
				So(err, ShouldBeNil)
				So(meta.SessionID, ShouldNotBeEmpty)
				So(meta.Seed, ShouldEqual, 7)

				records, recErr := svc.Records(ctx, meta.SessionID)
				So(recErr, ShouldBeNil)
				So(len(records), ShouldEqual, meta.RecordCount)
			})

			Convey("And the same seed should reproduce the same records", func() {
				So(err, ShouldBeNil)
				again, againErr := svc.CreateSession(ctx, &seed)
				So(againErr, ShouldBeNil)

				a, _ := svc.Records(ctx, meta.SessionID)
				b, _ := svc.Records(ctx, again.SessionID)
				So(b, ShouldResemble, a)
			})
		})

		Convey("When creating a session without a seed", func() {
			meta, err := svc.CreateSession(ctx, nil)

			Convey("Then a seed should be drawn automatically", func() {
				So(err, ShouldBeNil)
				So(meta.Seed, ShouldNotEqual, 0)
			})
		})
	})
}

func TestService_Meta(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When describing the default dataset", func() {
			meta, err := svc.Meta(ctx, "")

			Convey("Then it should carry the roster and span", func() {
				So(err, ShouldBeNil)
				So(meta.Seed, ShouldEqual, 42)
				So(len(meta.Vendors), ShouldEqual, 15)
				So(len(meta.Categories), ShouldEqual, 3)
				So(len(meta.Regions), ShouldEqual, 4)
				So(meta.RecordCount, ShouldEqual, 15*6)
				So(meta.SpanTo.After(meta.SpanFrom), ShouldBeTrue)
			})

			Convey("And the weights should sum to one", func() {
				So(err, ShouldBeNil)
				sum := meta.Weights.OnTime + meta.Weights.Quality + meta.Weights.Compliance + meta.Weights.LeadTime
				So(sum, ShouldAlmostEqual, 1.0)
			})
		})
	})
}
