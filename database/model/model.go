// Package model defines the persisted records of the bookshelf API.
package model

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
}

type Book struct {
	Id            int      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId        int      `json:"userId"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Genre         string   `json:"genre"`
	Year          int      `json:"year"`
	ImageUrl      string   `json:"imageUrl"`
	Ratings       []Rating `json:"ratings" gorm:"foreignKey:BookId;references:Id;constraint:OnDelete:CASCADE"`
	AverageRating float64  `json:"averageRating"`
}

// Rating is one user's grade for one book. The composite unique index is
// the backstop against two concurrent submissions by the same user.
type Rating struct {
	Id     int `json:"-" gorm:"primaryKey;autoIncrement"`
	BookId int `json:"-" gorm:"uniqueIndex:idx_rating_book_user;not null"`
	UserId int `json:"userId" gorm:"uniqueIndex:idx_rating_book_user;not null"`
	Grade  int `json:"grade"`
}
