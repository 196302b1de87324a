package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/frahmantamala/restaurant-ledger/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Logger", func() {
	DescribeTable("ParseLevel",
		func(raw string, want slog.Level) {
			Expect(logger.ParseLevel(raw)).To(Equal(want))
		},
		Entry("debug", "debug", slog.LevelDebug),
		Entry("upper case", "WARN", slog.LevelWarn),
		Entry("error", "error", slog.LevelError),
		Entry("unknown", "chatty", slog.LevelInfo),
	)

	It("should lazily provide a default logger", func() {
		Expect(logger.LoggerWrapper()).NotTo(BeNil())
		Expect(logger.From(context.Background())).NotTo(BeNil())
	})

	It("should carry request fields through the context", func() {
		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))

		ctx := context.Background()
		Expect(logger.Or(ctx, base)).To(BeIdenticalTo(base))

		scoped := logger.With(ctx, "traceID", "abc")
		Expect(logger.Or(scoped, base)).NotTo(BeIdenticalTo(base))
		Expect(logger.From(scoped)).To(BeIdenticalTo(logger.Or(scoped, base)))
	})
})
