package models

// Product is an inventory item with a live stock count.
// Quantity must never go negative; the services layer guards every
// deduction.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Description string  `json:"description"`
	// Path of the stored image file, empty when the product has none.
	ImagePath string `json:"image_path"`
}
