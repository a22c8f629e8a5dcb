package snapcache_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/internal/domain/snapcache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryCache(t *testing.T) {
	Convey("Given a snapshot cache", t, func() {
		cache := snapcache.NewInMemoryCache()

		Convey("When getting a missing key", func() {
			_, ok := cache.Get(context.Background(), "missing")

			Convey("Then it should report a miss", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When putting and getting a snapshot", func() {
			snap := snapcache.Snapshot{
				KPIs: model.KPISet{RecordCount: 42, VendorCount: 7},
			}
			cache.Put(context.Background(), "key-1", snap)
			got, ok := cache.Get(context.Background(), "key-1")

			Convey("Then the stored snapshot should come back", func() {
				So(ok, ShouldBeTrue)
				So(got.KPIs.RecordCount, ShouldEqual, 42)
				So(got.KPIs.VendorCount, ShouldEqual, 7)
			})

			Convey("And the size should reflect it", func() {
				So(cache.Size(), ShouldEqual, 1)
			})
		})

		Convey("When overwriting an existing key", func() {
			cache.Put(context.Background(), "key-1", snapcache.Snapshot{KPIs: model.KPISet{RecordCount: 1}})
			cache.Put(context.Background(), "key-1", snapcache.Snapshot{KPIs: model.KPISet{RecordCount: 2}})
			got, ok := cache.Get(context.Background(), "key-1")

			Convey("Then the latest snapshot wins without growing the cache", func() {
				So(ok, ShouldBeTrue)
				So(got.KPIs.RecordCount, ShouldEqual, 2)
				So(cache.Size(), ShouldEqual, 1)
			})
		})
	})
}

func TestInMemoryCache_Eviction(t *testing.T) {
	Convey("Given a cache bounded to 3 snapshots", t, func() {
		cache := snapcache.NewInMemoryCache(snapcache.WithMaxSize(3))

		Convey("When inserting past capacity", func() {
			for i := 0; i < 4; i++ {
				cache.Put(context.Background(), fmt.Sprintf("key-%d", i), snapcache.Snapshot{
					KPIs: model.KPISet{RecordCount: i},
				})
			}

			Convey("Then the oldest entry should have been evicted", func() {
				So(cache.Size(), ShouldEqual, 3)
				_, ok := cache.Get(context.Background(), "key-0")
				So(ok, ShouldBeFalse)
			})

			Convey("And the newest entries should remain", func() {
				for i := 1; i < 4; i++ {
					_, ok := cache.Get(context.Background(), fmt.Sprintf("key-%d", i))
					So(ok, ShouldBeTrue)
				}
			})
		})
	})
}
