package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/medailles/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.SiteURL, convey.ShouldEqual, "francemedailles.fr")
			convey.So(cfg.ComparisonYears, convey.ShouldHaveLength, 10)
			convey.So(cfg.ActiveYear(), convey.ShouldEqual, 2026)
			convey.So(cfg.OpacityMax, convey.ShouldEqual, 0.68)
			convey.So(cfg.OpacityMin, convey.ShouldEqual, 0.24)
			convey.So(cfg.HoverTolerancePX, convey.ShouldEqual, 20)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then day files are named by year", func() {
			convey.So(cfg.Resources.DayFile(2022), convey.ShouldEqual, "medal_evolution_since_j0_2022_FRA.json")
		})

		convey.Convey("Then durations derive from their integer settings", func() {
			convey.So(cfg.HTTPTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Duration(0))
			cfg.RefreshIntervalS = 90
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, 90*time.Second)
		})

		convey.Convey("Then an empty year list has no active year", func() {
			cfg.ComparisonYears = nil
			convey.So(cfg.ActiveYear(), convey.ShouldEqual, 0)
		})
	})
}
