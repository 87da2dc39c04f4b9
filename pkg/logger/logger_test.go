package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/paddock/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an uninitialized package", t, func() {
		Convey("Then Get panics until Init runs", func() {
			So(func() { logger.Get() }, ShouldPanic)
		})
	})

	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()

		Convey("Then the global logger is usable", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(ctx, "hello",
					logger.String("k", "v"),
					logger.Int("n", 7),
					logger.Float64("f", 0.5),
					logger.Bool("b", true),
					logger.Any("a", []int{1}),
					logger.Error(errors.New("boom")),
				)
			}, ShouldNotPanic)
		})

		Convey("And Named returns a grouped logger", func() {
			l := logger.Named("api")
			So(l, ShouldNotBeNil)
			So(func() { l.Debug(ctx, "scoped") }, ShouldNotPanic)
		})

		Convey("And Sync is a no-op", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known level names parse", func() {
			for _, lvl := range []string{"debug", "info", "WARN", "warning", "Error", ""} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("And unknown names are rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		Convey("Then keys and values pass through", func() {
			So(logger.String("k", "v"), ShouldResemble, logger.Field{Key: "k", Value: "v"})
			So(logger.Int("n", 3), ShouldResemble, logger.Field{Key: "n", Value: 3})
			So(logger.Bool("b", false), ShouldResemble, logger.Field{Key: "b", Value: false})
		})

		Convey("And Error always uses the error key", func() {
			err := errors.New("boom")
			f := logger.Error(err)
			So(f.Key, ShouldEqual, "error")
			So(f.Value, ShouldEqual, err)
		})
	})
}
