package services

import (
	"errors"
	"fmt"

	"github.com/diewo77/jucygo/internal/models"

	"gorm.io/gorm"
)

// InventoryService is the stock ledger: every stock mutation in the
// system goes through deductStock/restoreStock, which are also composed
// into the sale and order transactions.
type InventoryService struct{ DB *gorm.DB }

func NewInventoryService(db *gorm.DB) *InventoryService { return &InventoryService{DB: db} }

// HasSufficientStock reports whether the named product exists and has at
// least qty units on hand. Meant for user-facing pre-checks; DeductStock
// re-checks and is the authoritative guard.
func (s *InventoryService) HasSufficientStock(productName string, qty int) (bool, error) {
	p, err := productByName(s.DB, productName)
	if errors.Is(err, ErrProductNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Quantity >= qty, nil
}

// DeductStock removes qty units from the named product. Returns
// ErrProductNotFound or ErrInsufficientStock without touching the row.
func (s *InventoryService) DeductStock(productName string, qty int) error {
	return deductStock(s.DB, productName, qty)
}

// RestoreStock adds qty units back to the named product.
func (s *InventoryService) RestoreStock(productName string, qty int) error {
	return restoreStock(s.DB, productName, qty)
}

func productByName(db *gorm.DB, name string) (*models.Product, error) {
	var p models.Product
	err := db.Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup product %q: %w", name, err)
	}
	return &p, nil
}

// deductStock is the sole negative-stock guard: it refuses any write
// that would take quantity below zero.
func deductStock(db *gorm.DB, name string, qty int) error {
	p, err := productByName(db, name)
	if err != nil {
		return err
	}
	newQty := p.Quantity - qty
	if newQty < 0 {
		return ErrInsufficientStock
	}
	return db.Model(&models.Product{}).Where("id = ?", p.ID).Update("quantity", newQty).Error
}

// restoreStock adds qty back. When the product no longer exists under
// that name (renamed or deleted after the order was placed) the
// restoration silently drops: sales and orders only carry the
// denormalized name, so there is nothing left to restock.
func restoreStock(db *gorm.DB, name string, qty int) error {
	p, err := productByName(db, name)
	if errors.Is(err, ErrProductNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return db.Model(&models.Product{}).Where("id = ?", p.ID).Update("quantity", p.Quantity+qty).Error
}
