package models

// User represents a registered account.
type User struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Firstname      string `json:"firstname" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Lastname       string `json:"lastname" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Email          string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	HashedPassword string `json:"-" gorm:"type:varchar(255)"` // Never serialized
	PhotoName      string `json:"photo_name" gorm:"type:varchar(255)"`
	IsAdmin        bool   `json:"is_admin" gorm:"default:false"`
}
