package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/diewo77/jucygo/internal/models"

	"gorm.io/gorm"
)

// exact YYYY-MM-DD switches sale search to date mode
var saleDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SaleService records immediate transactions against the append-only
// sales log.
type SaleService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{DB: db, Now: time.Now}
}

// Record inserts the sale row and deducts stock in a single transaction,
// so a failed deduction rolls the row back and a crash can never leave a
// logged sale without its stock movement. Quantity must be positive: a
// zero or negative quantity would write a nonsense row and push stock
// the wrong way through the deduction. Returns ErrNonPositiveQty,
// ErrProductNotFound or ErrInsufficientStock with no state change on
// failure.
func (s *SaleService) Record(productName string, qty int, unitPrice float64) (*models.Sale, error) {
	if qty <= 0 {
		return nil, ErrNonPositiveQty
	}
	sale := models.Sale{
		ProductName:  productName,
		QuantitySold: qty,
		UnitPrice:    unitPrice,
		TotalAmount:  unitPrice * float64(qty),
		Date:         s.Now().Format(models.DateLayout),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		return deductStock(tx, productName, qty)
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns all sales, most recent first.
func (s *SaleService) List() ([]models.Sale, error) {
	var sales []models.Sale
	if err := s.DB.Order("id desc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Search filters the sales log. An exact YYYY-MM-DD query matches the
// stored timestamp by prefix (whole day regardless of time); anything
// else is a case-insensitive contains match on the product name.
func (s *SaleService) Search(query string) ([]models.Sale, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List()
	}
	var sales []models.Sale
	dbq := s.DB.Order("id desc")
	if saleDatePattern.MatchString(query) {
		dbq = dbq.Where("date LIKE ?", query+"%")
	} else {
		dbq = dbq.Where("lower(product_name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if err := dbq.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// TotalByDate sums total_amount over every sale whose timestamp begins
// with the given date string.
func (s *SaleService) TotalByDate(date string) (float64, error) {
	var total float64
	err := s.DB.Model(&models.Sale{}).
		Where("date LIKE ?", date+"%").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
