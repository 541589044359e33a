package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	repository "github.com/ghighi/quoteboard/internal/adapters/repository"
	"github.com/ghighi/quoteboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func sampleRecord() model.Record {
	return model.Record{
		TimestampUTC:       "2024-01-01T10:00:00Z",
		Date:               "2024-01-01",
		Player:             "Alice",
		Event:              "Marathon",
		Quote:              "Alice wins",
		ImpliedProbability: 0.3,
	}
}

func TestCSVStore(t *testing.T) {
	convey.Convey("Given a CSV store on a fresh path", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "data", "quotes.csv")

		store, err := repository.NewCSVStore(ctx, path)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the file should exist with the canonical header", func() {
			raw, readErr := os.ReadFile(path)
			convey.So(readErr, convey.ShouldBeNil)
			convey.So(string(raw), convey.ShouldEqual, "timestamp_utc,date,player,event,quote,implied_probability\n")
		})

		convey.Convey("When a record is appended", func() {
			rec := sampleRecord()
			convey.So(store.Append(ctx, rec), convey.ShouldBeNil)

			convey.Convey("Then ReadAll should return it as the last element", func() {
				records, readErr := store.ReadAll(ctx)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(records, convey.ShouldHaveLength, 1)
				convey.So(records[0], convey.ShouldResemble, rec)
				convey.So(records[0].TimestampUTC, convey.ShouldNotBeEmpty)
			})

			convey.Convey("And Count should report one record", func() {
				convey.So(store.Count(ctx), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When two records are appended in sequence", func() {
			first := sampleRecord()
			second := sampleRecord()
			second.Player = "Bob"
			second.Quote = "Bob loses"
			convey.So(store.Append(ctx, first), convey.ShouldBeNil)
			convey.So(store.Append(ctx, second), convey.ShouldBeNil)

			convey.Convey("Then ReadAll should preserve submission order", func() {
				records, readErr := store.ReadAll(ctx)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(records, convey.ShouldHaveLength, 2)
				convey.So(records[0].Player, convey.ShouldEqual, "Alice")
				convey.So(records[1].Player, convey.ShouldEqual, "Bob")
			})
		})

		convey.Convey("When probabilities sit at the bounds", func() {
			low := sampleRecord()
			low.ImpliedProbability = 0
			high := sampleRecord()
			high.ImpliedProbability = 1
			convey.So(store.Append(ctx, low), convey.ShouldBeNil)
			convey.So(store.Append(ctx, high), convey.ShouldBeNil)

			convey.Convey("Then both should round-trip exactly", func() {
				records, readErr := store.ReadAll(ctx)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(records[0].ImpliedProbability, convey.ShouldEqual, 0.0)
				convey.So(records[1].ImpliedProbability, convey.ShouldEqual, 1.0)
			})
		})

		convey.Convey("When a record contains commas and quotes in free text", func() {
			rec := sampleRecord()
			rec.Event = `Marathon, "city edition"`
			rec.Quote = "finishes\nunder 3h"
			convey.So(store.Append(ctx, rec), convey.ShouldBeNil)

			convey.Convey("Then the text should survive the CSV round trip", func() {
				records, readErr := store.ReadAll(ctx)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(records[0], convey.ShouldResemble, rec)
			})
		})

		convey.Convey("When the store is reopened on the same file", func() {
			convey.So(store.Append(ctx, sampleRecord()), convey.ShouldBeNil)
			reopened, reErr := repository.NewCSVStore(ctx, path)

			convey.Convey("Then the existing history should still be readable", func() {
				convey.So(reErr, convey.ShouldBeNil)
				records, readErr := reopened.ReadAll(ctx)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(records, convey.ShouldHaveLength, 1)
			})
		})
	})

	convey.Convey("Given a file with a foreign header", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "other.csv")
		convey.So(os.WriteFile(path, []byte("when,who,what\n"), 0o644), convey.ShouldBeNil)

		convey.Convey("When opening a CSV store on it", func() {
			_, err := repository.NewCSVStore(ctx, path)

			convey.Convey("Then startup should fail with a schema mismatch", func() {
				convey.So(err, convey.ShouldWrap, repository.ErrSchemaMismatch)
			})
		})
	})

	convey.Convey("Given an unreachable path", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		// A directory where the file should be makes every file op fail.
		path := filepath.Join(dir, "quotes.csv")
		convey.So(os.Mkdir(path, 0o755), convey.ShouldBeNil)

		convey.Convey("When opening a CSV store on it", func() {
			_, err := repository.NewCSVStore(ctx, path)

			convey.Convey("Then the store should report unavailability", func() {
				convey.So(err, convey.ShouldWrap, repository.ErrUnavailable)
			})
		})
	})
}
