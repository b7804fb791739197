package models

import "time"

// Sale represents one recorded sale event for a product.
type Sale struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ProductID uint `json:"product_id" gorm:"index"`
	// Product is the owning side of the relation. It is excluded from JSON
	// to avoid cyclic payloads; revenue math reads its current price.
	Product  *Product  `json:"-" gorm:"foreignKey:ProductID"`
	Quantity int       `json:"quantity"`
	SaleDate time.Time `json:"sale_date"`
}
