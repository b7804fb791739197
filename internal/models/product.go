package models

// Product represents a catalog item in the store together with its sales
// history. Field validation happens on the request types in the services
// package, not here.
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"type:varchar(100)"`
	Description string  `json:"description" gorm:"type:varchar(500)"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	// Sales are owned by the product; deleting the product deletes them.
	Sales []Sale `json:"sales" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
