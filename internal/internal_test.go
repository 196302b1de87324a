package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/frahmantamala/restaurant-ledger/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal Suite")
}

func validConfig() *internal.Config {
	cfg := &internal.Config{
		Database: internal.DatabaseConfig{Driver: internal.DriverSQLite, Source: "file:ledger.db"},
	}
	cfg.ApplyDefaults()
	return cfg
}

var _ = Describe("Config", func() {
	Describe("ApplyDefaults", func() {
		It("should fill every unset value", func() {
			cfg := &internal.Config{}
			cfg.ApplyDefaults()

			Expect(cfg.Server.Port).To(Equal(8080))
			Expect(cfg.Database.Driver).To(Equal(internal.DriverPostgres))
			Expect(cfg.Database.MaxOpenConns).To(Equal(10))
			Expect(cfg.Database.MaxIdleConns).To(Equal(5))
			Expect(cfg.Store.QueryTimeout).To(Equal(5 * time.Second))
			Expect(cfg.Observability.Logging.Level).To(Equal("info"))
			Expect(cfg.Observability.Logging.Format).To(Equal("text"))
			Expect(cfg.Restaurant.Name).To(Equal("Restaurant"))
		})

		It("should keep configured values", func() {
			cfg := &internal.Config{Server: internal.ServerConfig{Port: 9000}, Restaurant: internal.RestaurantConfig{Name: "Trattoria"}}
			cfg.ApplyDefaults()

			Expect(cfg.Server.Port).To(Equal(9000))
			Expect(cfg.Restaurant.Name).To(Equal("Trattoria"))
		})
	})

	Describe("Validate", func() {
		It("should accept a defaulted sqlite config", func() {
			Expect(validConfig().Validate()).To(Succeed())
		})

		It("should reject an unknown driver", func() {
			cfg := validConfig()
			cfg.Database.Driver = "mysql"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring(`unsupported driver "mysql"`)))
		})

		It("should require a source", func() {
			cfg := validConfig()
			cfg.Database.Source = ""
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("source is required")))
		})

		It("should reject an unknown timezone", func() {
			cfg := validConfig()
			cfg.Restaurant.Timezone = "Mars/Olympus"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("invalid timezone")))
		})

		It("should reject a logging level it cannot map", func() {
			cfg := validConfig()
			cfg.Observability.Logging.Level = "verbose"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("logging config")))
		})

		It("should join every failure", func() {
			cfg := validConfig()
			cfg.Database.Source = ""
			cfg.Observability.Logging.Format = "xml"

			err := cfg.Validate()
			Expect(err).To(MatchError(ContainSubstring("database config")))
			Expect(err).To(MatchError(ContainSubstring("; logging config")))
		})

		It("should reject a read timeout shorter than the header timeout", func() {
			cfg := validConfig()
			cfg.Server.ReadHeaderTimeout = 10 * time.Second
			cfg.Server.ReadTimeout = time.Second
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("read_timeout")))
		})
	})

	Describe("LoadConfigFromEnv", func() {
		It("should read the container variables", func() {
			GinkgoT().Setenv("HTTP_PORT", "9090")
			GinkgoT().Setenv("DB_DRIVER", "sqlite")
			GinkgoT().Setenv("DATABASE_URL", "file:env.db")
			GinkgoT().Setenv("STORE_QUERY_TIMEOUT", "750ms")
			GinkgoT().Setenv("RESTAURANT_TIMEZONE", "Europe/Rome")

			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.Server.Port).To(Equal(9090))
			Expect(cfg.Database.Driver).To(Equal(internal.DriverSQLite))
			Expect(cfg.Database.GetDSN()).To(Equal("file:env.db"))
			Expect(cfg.Store.QueryTimeout).To(Equal(750 * time.Millisecond))
			Expect(cfg.Restaurant.Location().String()).To(Equal("Europe/Rome"))
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should fall back on unparsable numbers", func() {
			GinkgoT().Setenv("HTTP_PORT", "eighty")
			Expect(internal.LoadConfigFromEnv().Server.Port).To(Equal(8080))
		})
	})

	It("should split and trim allowed origins", func() {
		server := internal.ServerConfig{AllowedOrigins: " http://a.local , ,http://b.local"}
		Expect(server.Origins()).To(Equal([]string{"http://a.local", "http://b.local"}))
		Expect((&internal.ServerConfig{}).Origins()).To(BeNil())
	})

	It("should fall back to the local zone without a timezone", func() {
		Expect((&internal.RestaurantConfig{}).Location()).To(Equal(time.Local))
	})
})

var _ = Describe("AppError", func() {
	It("should render the error envelope with its status", func() {
		status, body := internal.NewNotFoundError("Income record not found", internal.ErrCodeIncomeNotFound).ToHTTPResponse()
		Expect(status).To(Equal(http.StatusNotFound))

		b, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(MatchJSON(`{"error":{"type":"NOT_FOUND","code":"INCOME_NOT_FOUND","message":"Income record not found"}}`))
	})

	It("should keep the cause out of the envelope", func() {
		appErr := internal.NewStoreError("record store request failed", errors.New("dial tcp 10.0.0.1:5432"))

		b, err := json.Marshal(appErr)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).NotTo(ContainSubstring("dial tcp"))
		Expect(appErr.StatusCode).To(Equal(http.StatusBadGateway))
		Expect(appErr.Error()).To(ContainSubstring("dial tcp"))
	})

	It("should be found through wrapping", func() {
		wrapped := fmt.Errorf("page: %w", internal.NewValidationFieldError("amount", "amount must be a number", internal.ErrCodeInvalidAmount))

		appErr, ok := internal.IsAppError(wrapped)
		Expect(ok).To(BeTrue())
		Expect(appErr.Error()).To(Equal("amount must be a number"))
		Expect(appErr.GetDetailedMessage()).To(Equal("amount must be a number"))
	})

	It("should unwrap to an attached cause", func() {
		cause := errors.New("unexpected EOF")
		appErr := internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed).WithCause(cause)

		Expect(errors.Is(appErr, cause)).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("should not claim plain errors", func() {
		_, ok := internal.IsAppError(errors.New("plain"))
		Expect(ok).To(BeFalse())
	})
})
