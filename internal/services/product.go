package services

import (
	"errors"
	"strings"

	"github.com/diewo77/jucygo/internal/imagestore"
	"github.com/diewo77/jucygo/internal/models"

	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string
	Price       float64
	Quantity    int
	Description string
	ImagePath   string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if in.Price < 0 {
		return ErrNegativePrice
	}
	if in.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// ProductService is the product catalog. It owns the image files too:
// deleting a product removes its stored image.
type ProductService struct {
	DB     *gorm.DB
	Images *imagestore.Store
}

func NewProductService(db *gorm.DB, images *imagestore.Store) *ProductService {
	return &ProductService{DB: db, Images: images}
}

func (s *ProductService) Create(in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := models.Product{
		Name:        in.Name,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		ImagePath:   in.ImagePath,
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) Get(id uint) (*models.Product, error) {
	var p models.Product
	err := s.DB.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByName looks a product up by its exact name, the natural key that
// sales and orders reference.
func (s *ProductService) GetByName(name string) (*models.Product, error) {
	return productByName(s.DB, name)
}

// Update overwrites the editable fields. A replaced image is removed
// from the store once the row update has succeeded.
func (s *ProductService) Update(id uint, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	oldImage := p.ImagePath
	p.Name = in.Name
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Description = in.Description
	p.ImagePath = in.ImagePath
	if err := s.DB.Save(p).Error; err != nil {
		return nil, err
	}
	if s.Images != nil && oldImage != "" && oldImage != in.ImagePath {
		if rmErr := s.Images.Remove(oldImage); rmErr != nil {
			return p, rmErr
		}
	}
	return p, nil
}

// Delete removes the product row and its image file. Outstanding sales
// and orders keep their denormalized name snapshots and are unaffected.
func (s *ProductService) Delete(id uint) error {
	p, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(&models.Product{}, id).Error; err != nil {
		return err
	}
	if s.Images != nil && p.ImagePath != "" {
		return s.Images.Remove(p.ImagePath)
	}
	return nil
}

// List returns all products, most recent first.
func (s *ProductService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.Order("id desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search is a case-insensitive contains match on the product name.
func (s *ProductService) Search(query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List()
	}
	var products []models.Product
	like := "%" + strings.ToLower(query) + "%"
	err := s.DB.Where("lower(name) LIKE ?", like).Order("id desc").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
