package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}
	namedLogger.Info(context.Background(), "test message")
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		So(SetLevelString("info"), ShouldBeNil)
		var buf bytes.Buffer
		log := New(&buf).Named("usage")

		Convey("When logging typed fields with a request id in context", func() {
			ctx := WithRequestID(context.Background(), "req-1")
			log.Info(ctx, "fetched",
				String("url", "https://example.com"),
				Int("status", 200),
				Int64("bytes", 27),
				Duration("took", 1500*time.Millisecond),
				Error(errors.New("boom")),
				Any("ok", true),
			)

			var line map[string]any
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)

			Convey("Then every field is present in the JSON line", func() {
				So(line["message"], ShouldEqual, "fetched")
				So(line["level"], ShouldEqual, "info")
				So(line["logger"], ShouldEqual, "usage")
				So(line["request_id"], ShouldEqual, "req-1")
				So(line["url"], ShouldEqual, "https://example.com")
				So(line["status"], ShouldEqual, float64(200))
				So(line["bytes"], ShouldEqual, float64(27))
				So(line["error"], ShouldEqual, "boom")
				So(line["ok"], ShouldEqual, true)
				So(line["source"], ShouldContainSubstring, "logger_test.go:")
			})
		})

		Convey("When the level is raised above debug", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			defer func() { _ = SetLevelString("info") }()
			log.Debug(context.Background(), "hidden")
			log.Info(context.Background(), "hidden too")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		defer func() { _ = SetLevelString("info") }()

		for _, lvl := range []string{"debug", "INFO", "", "warn", "warning", " error "} {
			So(SetLevelString(lvl), ShouldBeNil)
		}

		Convey("Then an unknown level is rejected", func() {
			err := SetLevelString("verbose")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown log level")
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given a context without a request id", t, func() {
		So(RequestID(context.Background()), ShouldEqual, "")

		Convey("Then WithRequestID stores one", func() {
			ctx := WithRequestID(context.Background(), "abc")
			So(RequestID(ctx), ShouldEqual, "abc")
		})
	})
}
