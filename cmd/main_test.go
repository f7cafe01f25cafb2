package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/medailles/internal/app"
)

var fixtures = map[string]string{
	"france_winter_medals_by_edition.json": `[{"year": 2022, "gold": 5, "silver": 7, "bronze": 2, "total": 14}]`,
	"medal_evolution_since_j0_2026_FRA.json": `[
  {"day_index": 0, "date": "2026-02-07", "gold": 1, "silver": 0, "bronze": 0, "total": 1},
  {"day_index": 1, "date": "2026-02-08", "gold": 1, "silver": 1, "bronze": 0, "total": 2}
]`,
	"medal_evolution_since_j0_2022_FRA.json": `[
  {"day_index": 0, "date": "2022-02-05", "gold": 0, "silver": 0, "bronze": 1, "total": 1},
  {"day_index": 1, "date": "2022-02-06", "gold": 0, "silver": 1, "bronze": 1, "total": 2}
]`,
	"france_winter_medals_by_sport.json": `[{"sport": "Biathlon", "gold": 1, "silver": 0, "bronze": 0, "total": 1, "events": []}]`,
	"france_winter_top_athletes.json":    `[{"athlete": "Quentin Fillon Maillet", "sport": "Biathlon", "editions": [2022], "gold": 2, "silver": 3, "bronze": 0}]`,
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		root := newRootCmd()

		convey.Convey("Then it exposes build, serve and export", func() {
			var names []string
			for _, c := range root.Commands() {
				names = append(names, c.Name())
			}
			convey.So(names, convey.ShouldContain, "build")
			convey.So(names, convey.ShouldContain, "serve")
			convey.So(names, convey.ShouldContain, "export")
		})

		convey.Convey("Then export requires a chart id", func() {
			_, err := run("export")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestBuildAndExportCommands(t *testing.T) {
	convey.Convey("Given a data directory with two comparison years", t, func() {
		data := writeFixtures(t)
		t.Setenv("MEDAILLES_COMPARISON_YEARS", "2026,2022")
		t.Setenv("MEDAILLES_LOG_LEVEL", "error")

		convey.Convey("When running build", func() {
			site := filepath.Join(t.TempDir(), "site")
			out, err := run("build", "--data", data, "--out", site)

			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "site written to "+site)

			convey.Convey("Then the index and every chart image exist", func() {
				_, err := os.Stat(filepath.Join(site, service.IndexFile))
				convey.So(err, convey.ShouldBeNil)
				entries, err := os.ReadDir(filepath.Join(site, service.ExportsDir))
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, len(service.ChartIDs()))
			})
		})

		convey.Convey("When exporting a highlighted chart", func() {
			dest := t.TempDir()
			out, err := run("export", "j0-silver", "--data", data, "--out", dest, "--highlight", "2022")

			convey.So(err, convey.ShouldBeNil)
			path := strings.TrimSpace(out)
			convey.So(filepath.Base(path), convey.ShouldEqual, "france-medailles-les-m-dailles-par-jour-de-comp-tition-argent.png")
			_, err = os.Stat(path)
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("When exporting an unknown chart", func() {
			_, err := run("export", "j0-platinum", "--data", data, "--out", t.TempDir())
			convey.So(errors.Is(err, service.ErrUnknownChart), convey.ShouldBeTrue)
		})

		convey.Convey("When both hover flags are given", func() {
			_, err := run("export", "j0-total", "--data", data, "--highlight", "2022", "--pointer", "1:2")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestParsePointer(t *testing.T) {
	convey.Convey("Given pointer strings", t, func() {
		p, err := parsePointer("4:2.5")
		convey.So(err, convey.ShouldBeNil)
		convey.So(p, convey.ShouldResemble, service.Pointer{Day: 4, Value: 2.5})

		for _, bad := range []string{"4", "x:1", "-1:2", "3:y"} {
			_, err := parsePointer(bad)
			convey.So(errors.Is(err, errPointer), convey.ShouldBeTrue)
		}
	})
}
