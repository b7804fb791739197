package models

// User represents an authenticated caller of the catalog API.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
}
