package services

import "errors"

var (
	ErrProductNotFound   = errors.New("product_not_found")
	ErrInsufficientStock = errors.New("insufficient_stock")
	ErrOrderNotFound     = errors.New("order_not_found")
	ErrOrderFinalized    = errors.New("order_finalized")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrNameRequired      = errors.New("name_required")
	ErrCustomerRequired  = errors.New("customer_name_required")
	ErrNegativePrice     = errors.New("negative_price")
	ErrNegativeQuantity  = errors.New("negative_quantity")
	ErrNonPositiveQty    = errors.New("quantity_not_positive")
)
