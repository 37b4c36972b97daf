package product_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	productDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/product"
	"github.com/levkatan/lending-management/internal/product"
	productPostgres "github.com/levkatan/lending-management/internal/product/postgres"
)

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("Product Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    product.RepositoryAPI
		service *product.Service
		handler *product.Handler
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&productDatamodel.Product{})
		Expect(err).NotTo(HaveOccurred())

		repo = productPostgres.NewProductRepository(db)
		service = product.NewService(repo, slogger)
		handler = product.NewHandler(service)

		for _, seed := range []struct {
			name, category string
		}{
			{"Crib", "sleeping"},
			{"Stroller", "strollers"},
		} {
			_, err := service.Create(product.CreateProductDTO{
				Name:     seed.name,
				Category: seed.category,
			})
			Expect(err).NotTo(HaveOccurred())
		}
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("should list the catalog on GET /products", func() {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		w := httptest.NewRecorder()

		handler.ListProducts(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response struct {
			Products []*product.Product `json:"products"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Products).To(HaveLen(2))
		for _, p := range response.Products {
			Expect(p.Status).To(Equal(product.StatusAvailable))
		}
	})

	It("should filter the catalog by category", func() {
		req := httptest.NewRequest(http.MethodGet, "/products?category=sleeping", nil)
		w := httptest.NewRecorder()

		handler.ListProducts(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response struct {
			Products []*product.Product `json:"products"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Products).To(HaveLen(1))
		Expect(response.Products[0].Name).To(Equal("Crib"))
	})

	It("should reject an unknown status filter with 400", func() {
		req := httptest.NewRequest(http.MethodGet, "/products?status=lost", nil)
		w := httptest.NewRecorder()

		handler.ListProducts(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should create a product on POST /products", func() {
		body := strings.NewReader(`{"name":"Car seat","category":"travel"}`)
		req := httptest.NewRequest(http.MethodPost, "/products", body)
		w := httptest.NewRecorder()

		handler.CreateProduct(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var response struct {
			Product *product.Product `json:"product"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Product.ID).To(BeNumerically(">", 0))
		Expect(response.Product.Status).To(Equal(product.StatusAvailable))
	})

	It("should reject a nameless product with 400", func() {
		body := strings.NewReader(`{"category":"travel"}`)
		req := httptest.NewRequest(http.MethodPost, "/products", body)
		w := httptest.NewRecorder()

		handler.CreateProduct(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should update a product on PATCH /products/{id}", func() {
		body := strings.NewReader(`{"status":"unavailable"}`)
		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/products/1", body), "id", "1")
		w := httptest.NewRecorder()

		handler.UpdateProduct(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		updated, err := service.GetByID(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Status).To(Equal(product.StatusUnavailable))
	})

	It("should return 404 for a missing product", func() {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/products/999", nil), "id", "999")
		w := httptest.NewRecorder()

		handler.GetProduct(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should delete a product on DELETE /products/{id}", func() {
		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/products/1", nil), "id", "1")
		w := httptest.NewRecorder()

		handler.DeleteProduct(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		remaining, err := service.List(product.ListFilter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(remaining).To(HaveLen(1))
	})
})
