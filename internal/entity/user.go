package entity

type User struct {
	Base

	Name    string `gorm:"uniqueIndex"`
	Email   string
	IsAdmin bool
}
