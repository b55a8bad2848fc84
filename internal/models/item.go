package models

// Item represents an entry in the catalog. Items are not owned by a user.
type Item struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"gte=0"`
	Tax         *float64 `json:"tax" validate:"omitempty,gte=0"`
}
