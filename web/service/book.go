package service

import (
	"fmt"
	"path"
	"strings"

	"bookshelf/database"
	"bookshelf/database/model"
	"bookshelf/logger"
	"bookshelf/util/common"
)

const bestRatedCount = 3

// BookPayload is the client-supplied part of a book record, carried as a
// JSON string inside the multipart form.
type BookPayload struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
	Year   int    `json:"year"`
}

// BookService implements catalog CRUD, ownership enforcement and the
// one-rating-per-user averaging scheme.
type BookService struct {
	imageService *ImageService
}

func NewBookService() *BookService {
	return &BookService{imageService: NewImageService()}
}

func (s *BookService) GetBooks() ([]model.Book, error) {
	db := database.GetDB()
	var books []model.Book
	err := db.Model(&model.Book{}).Preload("Ratings").Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

// GetBestRated returns the top rated books, at most bestRatedCount.
// Ties break on ascending id, which keeps the order stable.
func (s *BookService) GetBestRated() ([]model.Book, error) {
	db := database.GetDB()
	var books []model.Book
	err := db.Model(&model.Book{}).
		Preload("Ratings").
		Order("average_rating DESC, id ASC").
		Limit(bestRatedCount).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookService) GetBook(id int) (*model.Book, error) {
	db := database.GetDB()
	book := &model.Book{}
	err := db.Model(&model.Book{}).Preload("Ratings").First(book, id).Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("book %d: %w", id, common.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	return book, nil
}

// CreateBook persists a new book owned by ownerId. Ratings always start
// empty, whatever the client sent along.
func (s *BookService) CreateBook(ownerId int, payload *BookPayload, imageUrl string) (int, error) {
	if err := validatePayload(payload); err != nil {
		return 0, err
	}

	book := &model.Book{
		UserId:        ownerId,
		Title:         strings.TrimSpace(payload.Title),
		Author:        strings.TrimSpace(payload.Author),
		Genre:         payload.Genre,
		Year:          payload.Year,
		ImageUrl:      imageUrl,
		Ratings:       []model.Rating{},
		AverageRating: 0,
	}

	db := database.GetDB()
	if err := db.Create(book).Error; err != nil {
		return 0, err
	}
	logger.Infof("book %d created by user %d", book.Id, ownerId)
	return book.Id, nil
}

// UpdateBook merges the supplied fields over the stored record. A missing
// book and a foreign owner produce the same denial so a requester cannot
// probe which ids exist. A new image replaces the reference only; the old
// file stays on disk.
func (s *BookService) UpdateBook(requesterId, id int, payload *BookPayload, imageUrl string) error {
	db := database.GetDB()

	book := &model.Book{}
	err := db.Model(&model.Book{}).First(book, id).Error
	if database.IsNotFound(err) || (err == nil && book.UserId != requesterId) {
		return fmt.Errorf("book %d not owned by user %d: %w", id, requesterId, common.ErrForbidden)
	} else if err != nil {
		return err
	}

	if payload.Title != "" {
		book.Title = strings.TrimSpace(payload.Title)
	}
	if payload.Author != "" {
		book.Author = strings.TrimSpace(payload.Author)
	}
	if payload.Genre != "" {
		book.Genre = payload.Genre
	}
	if payload.Year != 0 {
		book.Year = payload.Year
	}
	if imageUrl != "" {
		book.ImageUrl = imageUrl
	}

	return db.Save(book).Error
}

// DeleteBook removes the record and its ratings in one transaction, then
// deletes the stored image file best-effort. An image cleanup failure is
// logged and never rolls back the record deletion.
func (s *BookService) DeleteBook(requesterId, id int) error {
	db := database.GetDB()

	book := &model.Book{}
	err := db.Model(&model.Book{}).First(book, id).Error
	if database.IsNotFound(err) || (err == nil && book.UserId != requesterId) {
		return fmt.Errorf("book %d not owned by user %d: %w", id, requesterId, common.ErrForbidden)
	} else if err != nil {
		return err
	}

	tx := db.Begin()
	if err = tx.Where("book_id = ?", id).Delete(&model.Rating{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err = tx.Delete(&model.Book{}, id).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err = tx.Commit().Error; err != nil {
		return err
	}

	// File cleanup happens after the record is gone and never fails the
	// request.
	if book.ImageUrl != "" {
		s.imageService.Remove(path.Base(book.ImageUrl))
	}
	logger.Infof("book %d deleted by user %d", id, requesterId)
	return nil
}

// RateBook appends a one-shot rating and recomputes the average inside a
// transaction. The unique index on (book_id, user_id) catches the race
// where two submissions by the same user pass the duplicate check at once.
func (s *BookService) RateBook(requesterId, id, grade int) (book *model.Book, err error) {
	if grade < 0 || grade > 5 {
		return nil, fmt.Errorf("grade %d outside [0,5]: %w", grade, common.ErrValidation)
	}

	db := database.GetDB()
	tx := db.Begin()
	defer func() {
		if err == nil {
			err = tx.Commit().Error
		} else {
			tx.Rollback()
		}
	}()

	book = &model.Book{}
	err = tx.Model(&model.Book{}).Preload("Ratings").First(book, id).Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("book %d: %w", id, common.ErrNotFound)
	} else if err != nil {
		return nil, err
	}

	for _, r := range book.Ratings {
		if r.UserId == requesterId {
			err = fmt.Errorf("user %d already rated book %d: %w", requesterId, id, common.ErrForbidden)
			return nil, err
		}
	}

	rating := model.Rating{BookId: id, UserId: requesterId, Grade: grade}
	err = tx.Create(&rating).Error
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			err = fmt.Errorf("user %d already rated book %d: %w", requesterId, id, common.ErrForbidden)
		}
		return nil, err
	}

	book.Ratings = append(book.Ratings, rating)
	sum := 0
	for _, r := range book.Ratings {
		sum += r.Grade
	}
	book.AverageRating = float64(sum) / float64(len(book.Ratings))

	err = tx.Model(&model.Book{}).Where("id = ?", id).
		Update("average_rating", book.AverageRating).Error
	if err != nil {
		return nil, err
	}
	return book, nil
}

func validatePayload(payload *BookPayload) error {
	if payload == nil {
		return fmt.Errorf("missing book data: %w", common.ErrValidation)
	}
	if strings.TrimSpace(payload.Title) == "" {
		return fmt.Errorf("title is required: %w", common.ErrValidation)
	}
	if strings.TrimSpace(payload.Author) == "" {
		return fmt.Errorf("author is required: %w", common.ErrValidation)
	}
	return nil
}
