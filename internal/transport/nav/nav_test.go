package nav_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/restaurant-ledger/internal/transport"
	"github.com/frahmantamala/restaurant-ledger/internal/transport/nav"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestNav(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Nav Suite")
}

var _ = Describe("Navigation", func() {
	It("lists the five sections in order", func() {
		var paths []string
		for _, it := range nav.Items() {
			paths = append(paths, it.Path)
		}
		Expect(paths).To(Equal([]string{"/", "/income", "/expenses", "/purchases", "/reports"}))
	})

	DescribeTable("highlights the active link",
		func(path, expected string) {
			var active []string
			for _, l := range nav.Links(path) {
				if l.Active {
					active = append(active, l.Label)
				}
			}
			Expect(active).To(ConsistOf(expected))
		},
		Entry("dashboard", "/", "Dashboard"),
		Entry("income", "/income", "Income"),
		Entry("nested purchase path", "/purchases/4/delete", "Purchases"),
		Entry("reports", "/reports", "Reports"),
	)

	It("serves the list as JSON", func() {
		h := nav.NewHandler(transport.NewBaseHandler(nil))
		rec := httptest.NewRecorder()
		h.GetNavigation(rec, httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var resp nav.Response
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Items).To(HaveLen(5))
		Expect(resp.Items[0]).To(Equal(nav.Item{Label: "Dashboard", Path: "/"}))
	})
})
