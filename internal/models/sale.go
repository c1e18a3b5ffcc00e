package models

// Sale is one row of the append-only sales log. ProductName and
// UnitPrice are snapshots taken at recording time, so the row survives
// later product renames or deletion. Rows are never updated or deleted.
type Sale struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	ProductName  string  `gorm:"not null" json:"product_name"`
	QuantitySold int     `gorm:"not null" json:"quantity_sold"`
	UnitPrice    float64 `gorm:"not null" json:"unit_price"`
	TotalAmount  float64 `gorm:"not null" json:"total_amount"`
	// Date is stored as "2006-01-02 15:04:05" so date search can use
	// plain string prefix matching.
	Date string `gorm:"not null" json:"date"`
}

// DateLayout is the storage format for Sale.Date and Order.Date.
const DateLayout = "2006-01-02 15:04:05"
