package parse_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/fifaclean/internal/domain/parse"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAmount(t *testing.T) {
	Convey("Given currency formatted values", t, func() {
		Convey("When the value carries a symbol and grouping commas", func() {
			v, err := parse.Amount("$1,250,000")

			Convey("Then the number is recovered", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 1250000)
			})
		})

		Convey("When the value uses another currency and decimals", func() {
			v, err := parse.Amount("€ 2,500.75")

			Convey("Then the number is recovered", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 2500.75)
			})
		})

		Convey("When the value is already plain", func() {
			v, err := parse.Amount("42")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 42)
		})

		Convey("When the value is not a number", func() {
			for _, raw := range []string{"N/A", "", "$", "12M", "abc"} {
				_, err := parse.Amount(raw)
				So(errors.Is(err, parse.ErrUnparseable), ShouldBeTrue)
			}
		})
	})
}

func TestDate(t *testing.T) {
	Convey("Given birth date strings", t, func() {
		Convey("When the date is ambiguous", func() {
			d, err := parse.Date("05/12/1990")

			Convey("Then the day is read first", func() {
				So(err, ShouldBeNil)
				So(d.Year(), ShouldEqual, 1990)
				So(d.Month(), ShouldEqual, time.December)
				So(d.Day(), ShouldEqual, 5)
			})
		})

		Convey("When the date is ISO formatted", func() {
			d, err := parse.Date("1990-05-12")
			So(err, ShouldBeNil)
			So(d.Month(), ShouldEqual, time.May)
			So(d.Day(), ShouldEqual, 12)
		})

		Convey("When the date uses other separators and short forms", func() {
			for raw, want := range map[string]time.Time{
				"12.5.1990":    time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
				"12-05-1990":   time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
				"12/05/90":     time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
				"12 May 1990":  time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
				"May 12, 1990": time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
				" 1990-05-12 ": time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
				"1990-5-12":    time.Date(1990, time.May, 12, 0, 0, 0, 0, time.UTC),
				"1990-5-2":     time.Date(1990, time.May, 2, 0, 0, 0, 0, time.UTC),
			} {
				d, err := parse.Date(raw)
				So(err, ShouldBeNil)
				So(d.Equal(want), ShouldBeTrue)
			}
		})

		Convey("When the date is malformed", func() {
			for _, raw := range []string{"", "yesterday", "31/02/1990", "1990-13-01"} {
				_, err := parse.Date(raw)
				So(errors.Is(err, parse.ErrUnparseable), ShouldBeTrue)
			}
		})
	})
}
