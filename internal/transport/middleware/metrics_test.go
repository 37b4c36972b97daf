package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("Metrics", func() {
	It("should label requests with the route pattern, not the raw path", func() {
		router := chi.NewRouter()
		router.Use(Metrics)
		router.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		for _, path := range []string{"/products/1", "/products/2"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			Expect(w.Code).To(Equal(http.StatusOK))
		}

		patternSeries := httpRequestsTotal.WithLabelValues(http.MethodGet, "/products/{id}", "200")
		Expect(testutil.ToFloat64(patternSeries)).To(Equal(2.0))

		rawSeries := httpRequestsTotal.WithLabelValues(http.MethodGet, "/products/1", "200")
		Expect(testutil.ToFloat64(rawSeries)).To(BeZero())
	})
})
