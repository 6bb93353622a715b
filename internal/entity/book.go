package entity

type Book struct {
	Base

	Title string
	Index int
}

type Chapter struct {
	Base

	BookID string
	Book   Book `gorm:"foreignKey:BookID"`

	Title string
	Index int
}
