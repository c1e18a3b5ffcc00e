package models

// OrderStatus is the closed set of order states. The zero value is not
// valid; orders are always created as StatusPending.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the three known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order is a vendor-placed customer reservation. Stock is deducted at
// placement; cancelling restores it, completing does not touch it again.
// ProductName, UnitPrice and TotalAmount are snapshots like on Sale.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	CustomerName    string      `gorm:"not null" json:"customer_name"`
	ProductName     string      `gorm:"not null" json:"product_name"`
	QuantityOrdered int         `gorm:"not null" json:"quantity_ordered"`
	UnitPrice       float64     `gorm:"not null" json:"unit_price"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	Status          OrderStatus `gorm:"not null" json:"status"`
	Date            string      `gorm:"not null" json:"date"`
}
