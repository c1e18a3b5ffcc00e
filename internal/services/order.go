package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/diewo77/jucygo/internal/models"

	"gorm.io/gorm"
)

// a leading year-dash is enough to switch order search to date mode
var orderDatePattern = regexp.MustCompile(`^\d{4}-`)

// OrderService owns the order lifecycle: pending on placement (with
// immediate stock reservation), then exactly one transition to completed
// or cancelled.
type OrderService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Now: time.Now}
}

// Place creates a pending order and reserves its stock in one
// transaction. The customer name must be non-empty and the quantity
// positive; a non-positive quantity would inflate stock through the
// deduction. Stock sufficiency is re-checked by the deduction itself.
func (s *OrderService) Place(customerName, productName string, qty int, unitPrice float64) (*models.Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrCustomerRequired
	}
	if qty <= 0 {
		return nil, ErrNonPositiveQty
	}
	order := models.Order{
		CustomerName:    customerName,
		ProductName:     productName,
		QuantityOrdered: qty,
		UnitPrice:       unitPrice,
		TotalAmount:     unitPrice * float64(qty),
		Status:          models.StatusPending,
		Date:            s.Now().Format(models.DateLayout),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return deductStock(tx, productName, qty)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) Get(id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Transition moves a pending order to completed or cancelled. Any other
// target status is ErrInvalidStatus, and an order already in a terminal
// state is ErrOrderFinalized, so a second cancellation can never restock
// twice. Cancellation restores the reserved stock in the same
// transaction as the status write; if the product has since been renamed
// or deleted the restoration silently drops (see restoreStock).
func (s *OrderService) Transition(id uint, status models.OrderStatus) error {
	if status != models.StatusCompleted && status != models.StatusCancelled {
		return ErrInvalidStatus
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.First(&order, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.StatusPending {
			return ErrOrderFinalized
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", status).Error; err != nil {
			return err
		}
		if status == models.StatusCancelled {
			return restoreStock(tx, order.ProductName, order.QuantityOrdered)
		}
		return nil
	})
}

func (s *OrderService) Complete(id uint) error { return s.Transition(id, models.StatusCompleted) }
func (s *OrderService) Cancel(id uint) error   { return s.Transition(id, models.StatusCancelled) }

// Delete removes the order row. No stock side effect: cancellation is
// the only path that restores stock.
func (s *OrderService) Delete(id uint) error {
	res := s.DB.Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// List returns all orders, most recent first.
func (s *OrderService) List() ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Order("id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Pending returns only orders still awaiting completion or cancellation.
func (s *OrderService) Pending() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Where("status = ?", models.StatusPending).Order("id desc").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Search dispatches on the query shape: a leading 4-digit-year dash
// means date-prefix search; otherwise customer name is tried first and
// product name only when the customer match comes back empty.
func (s *OrderService) Search(query string) ([]models.Order, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List()
	}
	var orders []models.Order
	if orderDatePattern.MatchString(query) {
		err := s.DB.Where("date LIKE ?", query+"%").Order("id desc").Find(&orders).Error
		return orders, err
	}
	like := "%" + strings.ToLower(query) + "%"
	if err := s.DB.Where("lower(customer_name) LIKE ?", like).Order("id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) > 0 {
		return orders, nil
	}
	err := s.DB.Where("lower(product_name) LIKE ?", like).Order("id desc").Find(&orders).Error
	return orders, err
}
