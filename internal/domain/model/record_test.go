package model_test

import (
	"testing"

	"github.com/ghighi/quoteboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestColumns(t *testing.T) {
	convey.Convey("Given the canonical column list", t, func() {
		cols := model.Columns()

		convey.Convey("Then it should match the backing store header in order", func() {
			convey.So(cols, convey.ShouldResemble, []string{
				"timestamp_utc", "date", "player", "event", "quote", "implied_probability",
			})
		})

		convey.Convey("Then HeaderMatches should accept it", func() {
			convey.So(model.HeaderMatches(cols), convey.ShouldBeTrue)
		})

		convey.Convey("Then HeaderMatches should reject reordered columns", func() {
			reordered := []string{"date", "timestamp_utc", "player", "event", "quote", "implied_probability"}
			convey.So(model.HeaderMatches(reordered), convey.ShouldBeFalse)
		})

		convey.Convey("Then HeaderMatches should reject a short header", func() {
			convey.So(model.HeaderMatches(cols[:5]), convey.ShouldBeFalse)
		})
	})
}

func TestRowRoundTrip(t *testing.T) {
	convey.Convey("Given a record", t, func() {
		rec := model.Record{
			TimestampUTC:       "2024-01-01T10:00:00Z",
			Date:               "2024-01-01",
			Player:             "Alice",
			Event:              "Marathon",
			Quote:              "Alice wins",
			ImpliedProbability: 0.3,
		}

		convey.Convey("When encoded and decoded again", func() {
			got, err := model.FromRow(rec.Row())

			convey.Convey("Then every field should survive unchanged", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, rec)
			})
		})

		convey.Convey("When the probability is at a bound", func() {
			for _, p := range []float64{0, 1} {
				rec.ImpliedProbability = p
				got, err := model.FromRow(rec.Row())
				convey.So(err, convey.ShouldBeNil)
				convey.So(got.ImpliedProbability, convey.ShouldEqual, p)
			}
		})

		convey.Convey("When the row has the wrong width", func() {
			_, err := model.FromRow(rec.Row()[:4])

			convey.Convey("Then decoding should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the probability field is not numeric", func() {
			row := rec.Row()
			row[5] = "maybe"
			_, err := model.FromRow(row)

			convey.Convey("Then decoding should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
