package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/levkatan/lending-management/internal"
	productDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/product"
	"github.com/levkatan/lending-management/internal/product"
)

// ProductRepository implements product.RepositoryAPI using GORM.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) product.RepositoryAPI {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *productDatamodel.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByID(id int64) (*productDatamodel.Product, error) {
	var p productDatamodel.Product
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(filter product.ListFilter) ([]*productDatamodel.Product, error) {
	var products []*productDatamodel.Product

	q := r.db.Order("id ASC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	err := q.Find(&products).Error
	return products, err
}

func (r *ProductRepository) Update(p *productDatamodel.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id int64) error {
	return r.db.Delete(&productDatamodel.Product{}, id).Error
}
