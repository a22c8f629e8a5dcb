package api_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/vendorboard/internal/adapters/http/api"
	service "github.com/okian/vendorboard/internal/app"
	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// newTestMux starts a real service and registers the API routes on a mux.
func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	server := api.NewServer(svc, svc, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

type recordsBody struct {
	Data    []model.VendorRecord `json:"data"`
	Count   int                  `json:"count"`
	Warning string               `json:"warning"`
}

type kpisBody struct {
	Data    model.KPISet `json:"data"`
	Warning string       `json:"warning"`
}

type summariesBody struct {
	Data    []model.VendorSummary `json:"data"`
	Count   int                   `json:"count"`
	Warning string                `json:"warning"`
}

type boardBody struct {
	Data struct {
		Top    []model.VendorSummary `json:"top"`
		Bottom []model.VendorSummary `json:"bottom"`
	} `json:"data"`
	Warning string `json:"warning"`
}

type trendBody struct {
	Vendor  string             `json:"vendor"`
	Data    []model.TrendPoint `json:"data"`
	Warning string             `json:"warning"`
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("Then the health endpoint should be accessible", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint should report a started service", func() {
			w := get(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)

			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
		})

		Convey("And the dashboard should serve HTML", func() {
			w := get(mux, "/dashboard")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "refresh-interval")
		})
	})
}

func TestRecordsEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When fetching the full record set", func() {
			w := get(mux, "/api/records")

			Convey("Then it should return every record", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body recordsBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Count, ShouldEqual, 15*6)
				So(len(body.Data), ShouldEqual, body.Count)
			})
		})

		Convey("When filtering by category and region", func() {
			w := get(mux, "/api/records/filtered?category=Packaging&region=North&region=South")

			Convey("Then only matching records should remain", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body recordsBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Warning, ShouldBeEmpty)
				for _, rec := range body.Data {
					So(rec.Category, ShouldEqual, "Packaging")
					So(rec.Region, ShouldBeIn, []string{"North", "South"})
				}
			})
		})

		Convey("When the date range is inverted", func() {
			w := get(mux, "/api/records/filtered?from=2023-06-01&to=2023-01-01")

			Convey("Then it should succeed with a warning and empty data", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body recordsBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Warning, ShouldNotBeEmpty)
				So(body.Count, ShouldEqual, 0)
			})
		})

		Convey("When a date is malformed", func() {
			w := get(mux, "/api/records/filtered?from=01-06-2023")

			Convey("Then it should reject the request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the session is unknown", func() {
			w := get(mux, "/api/records?session=no-such-session")

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestKPIsAndSummaries(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When fetching KPIs over the full dataset", func() {
			w := get(mux, "/api/kpis")

			Convey("Then the scalar set should cover every record", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body kpisBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Data.RecordCount, ShouldEqual, 15*6)
				So(body.Data.VendorCount, ShouldEqual, 15)
				So(body.Data.OnTimeRate, ShouldBeBetweenOrEqual, 0, 1)
				So(body.Data.TotalSpend, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When fetching summaries", func() {
			w := get(mux, "/api/summaries")

			Convey("Then there should be one per vendor, ordered by name", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body summariesBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Count, ShouldEqual, 15)
				for i := 1; i < len(body.Data); i++ {
					So(body.Data[i-1].Vendor, ShouldBeLessThan, body.Data[i].Vendor)
				}
			})
		})
	})
}

func TestLeaderboardEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When fetching the leaderboard without a limit", func() {
			w := get(mux, "/api/leaderboard")

			Convey("Then both slices should hold five vendors", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body boardBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(len(body.Data.Top), ShouldEqual, 5)
				So(len(body.Data.Bottom), ShouldEqual, 5)
			})

			Convey("And the top slice should be ordered by descending score", func() {
				var body boardBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				for i := 1; i < len(body.Data.Top); i++ {
					So(body.Data.Top[i-1].OverallScore, ShouldBeGreaterThanOrEqualTo, body.Data.Top[i].OverallScore)
				}
			})
		})

		Convey("When fetching with a custom limit", func() {
			w := get(mux, "/api/leaderboard?limit=3")

			Convey("Then both slices should honor it", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body boardBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(len(body.Data.Top), ShouldEqual, 3)
				So(len(body.Data.Bottom), ShouldEqual, 3)
			})
		})

		Convey("When the limit is invalid", func() {
			So(get(mux, "/api/leaderboard?limit=0").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/api/leaderboard?limit=abc").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the limit exceeds the maximum", func() {
			So(get(mux, "/api/leaderboard?limit=101").Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestTrendEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When fetching a known vendor's trend", func() {
			w := get(mux, "/api/trend/Vendor%201")

			Convey("Then it should return one point per month", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body trendBody
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Vendor, ShouldEqual, "Vendor 1")
				So(len(body.Data), ShouldEqual, 6)
			})
		})

		Convey("When the vendor is unknown", func() {
			w := get(mux, "/api/trend/Vendor%20999")

			Convey("Then it should return not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the vendor segment is missing", func() {
			w := get(mux, "/api/trend/")

			Convey("Then it should reject the request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestExportEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When exporting the full dataset", func() {
			w := get(mux, "/api/export")

			Convey("Then it should serve a CSV attachment", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/csv")
				So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, "vendor_data.csv")
			})

			Convey("And the body should parse with one row per record", func() {
				rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
				So(err, ShouldBeNil)
				So(len(rows)-1, ShouldEqual, 15*6)
			})
		})

		Convey("When exporting an inverted range", func() {
			w := get(mux, "/api/export?from=2023-06-01&to=2023-01-01")

			Convey("Then the file should be header-only", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				rows, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
				So(err, ShouldBeNil)
				So(len(rows), ShouldEqual, 1)
			})
		})
	})
}

func TestSessionsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When creating a session with an explicit seed", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(`{"seed": 7}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the session should be created and addressable", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var meta model.DatasetMeta
				So(json.Unmarshal(w.Body.Bytes(), &meta), ShouldBeNil)
				So(meta.SessionID, ShouldNotBeEmpty)
				So(meta.Seed, ShouldEqual, 7)

				records := get(mux, "/api/records?session="+meta.SessionID)
				So(records.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When creating a session with an empty body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader(""))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then a seed should be drawn automatically", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)

				var meta model.DatasetMeta
				So(json.Unmarshal(w.Body.Bytes(), &meta), ShouldBeNil)
				So(meta.SessionID, ShouldNotBeEmpty)
			})
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/sessions", strings.NewReader("not-json"))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should reject the request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using GET on the sessions route", func() {
			w := get(mux, "/api/sessions")

			Convey("Then it should not be found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestMetaEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(t)

		Convey("When describing the default dataset", func() {
			w := get(mux, "/api/meta")

			Convey("Then the roster, span, and weights should be present", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var meta model.DatasetMeta
				So(json.Unmarshal(w.Body.Bytes(), &meta), ShouldBeNil)
				So(meta.Seed, ShouldEqual, 42)
				So(len(meta.Vendors), ShouldEqual, 15)
				So(meta.Categories, ShouldResemble, model.Categories())
				So(meta.Regions, ShouldResemble, model.Regions())
				So(meta.RecordCount, ShouldEqual, 15*6)

				sum := meta.Weights.OnTime + meta.Weights.Quality + meta.Weights.Compliance + meta.Weights.LeadTime
				So(sum, ShouldAlmostEqual, 1.0)
			})
		})
	})
}
