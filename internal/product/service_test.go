package product_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/levkatan/lending-management/internal"
	productDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/product"
	"github.com/levkatan/lending-management/internal/product"
)

func TestProductService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Product Service Suite")
}

type mockProductRepository struct {
	products    map[int64]*productDatamodel.Product
	nextID      int64
	createError error
	listError   error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*productDatamodel.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Create(p *productDatamodel.Product) error {
	if m.createError != nil {
		return m.createError
	}
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepository) GetByID(id int64) (*productDatamodel.Product, error) {
	p, exists := m.products[id]
	if !exists {
		return nil, internal.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepository) List(filter product.ListFilter) ([]*productDatamodel.Product, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var rows []*productDatamodel.Product
	for _, p := range m.products {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		rows = append(rows, p)
	}
	return rows, nil
}

func (m *mockProductRepository) Update(p *productDatamodel.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepository) Delete(id int64) error {
	delete(m.products, id)
	return nil
}

var _ = Describe("ProductService", func() {
	var (
		service  *product.Service
		mockRepo *mockProductRepository
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockProductRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = product.NewService(mockRepo, logger)
	})

	Describe("Create", func() {
		It("should create an available product", func() {
			result, err := service.Create(product.CreateProductDTO{
				Name:     "High chair",
				Category: "feeding",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.Status).To(Equal(product.StatusAvailable))
		})

		It("should reject a product without a name", func() {
			_, err := service.Create(product.CreateProductDTO{Category: "feeding"})

			Expect(err).To(HaveOccurred())
			Expect(mockRepo.products).To(BeEmpty())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for _, seed := range []struct {
				name, category, status string
			}{
				{"Crib", "sleeping", product.StatusAvailable},
				{"Stroller", "strollers", product.StatusBorrowed},
				{"Car seat", "travel", product.StatusAvailable},
			} {
				created, err := service.Create(product.CreateProductDTO{
					Name:     seed.name,
					Category: seed.category,
				})
				Expect(err).ToNot(HaveOccurred())
				if seed.status != product.StatusAvailable {
					mockRepo.products[created.ID].Status = seed.status
				}
			}
		})

		It("should list everything without a filter", func() {
			result, err := service.List(product.ListFilter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(3))
		})

		It("should filter by status", func() {
			result, err := service.List(product.ListFilter{Status: product.StatusAvailable})

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(2))
		})

		It("should filter by category", func() {
			result, err := service.List(product.ListFilter{Category: "travel"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Name).To(Equal("Car seat"))
		})

		It("should reject an unknown status filter", func() {
			_, err := service.List(product.ListFilter{Status: "lost"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		var created *product.Product

		BeforeEach(func() {
			var err error
			created, err = service.Create(product.CreateProductDTO{
				Name:     "Crib",
				Category: "sleeping",
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should apply partial updates", func() {
			result, err := service.Update(created.ID, product.UpdateProductDTO{
				Description: "Wooden crib, good condition",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Name).To(Equal("Crib"))
			Expect(result.Description).To(Equal("Wooden crib, good condition"))
		})

		It("should allow a staff status override", func() {
			result, err := service.Update(created.ID, product.UpdateProductDTO{
				Status: product.StatusUnavailable,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(product.StatusUnavailable))
		})

		It("should reject an invalid status", func() {
			_, err := service.Update(created.ID, product.UpdateProductDTO{Status: "gone"})
			Expect(err).To(HaveOccurred())
		})

		It("should report a missing product", func() {
			_, err := service.Update(9999, product.UpdateProductDTO{Name: "x"})
			Expect(err).To(Equal(internal.ErrProductNotFound))
		})

		It("should keep zero fields untouched", func() {
			_, err := service.Update(created.ID, product.UpdateProductDTO{})
			Expect(err).ToNot(HaveOccurred())

			stored := mockRepo.products[created.ID]
			Expect(stored.Name).To(Equal("Crib"))
			Expect(stored.Category).To(Equal("sleeping"))
			Expect(stored.CreatedAt).To(BeTemporally("<=", time.Now()))
		})
	})

	Describe("Delete", func() {
		It("should delete an existing product", func() {
			created, err := service.Create(product.CreateProductDTO{Name: "Crib"})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Delete(created.ID)).To(Succeed())
			Expect(mockRepo.products).To(BeEmpty())
		})

		It("should report a missing product", func() {
			err := service.Delete(9999)
			Expect(err).To(Equal(internal.ErrProductNotFound))
		})
	})
})
