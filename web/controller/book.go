// Package controller provides the HTTP handlers of the bookshelf API.
package controller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"bookshelf/util/common"
	"bookshelf/web/middleware"
	"bookshelf/web/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// BookController handles catalog CRUD and rating submissions.
type BookController struct {
	bookService  *service.BookService
	imageService *service.ImageService
}

func NewBookController(g *gin.RouterGroup, auth gin.HandlerFunc) *BookController {
	a := &BookController{
		bookService:  service.NewBookService(),
		imageService: service.NewImageService(),
	}
	a.initRouter(g, auth)
	return a
}

func (a *BookController) initRouter(g *gin.RouterGroup, auth gin.HandlerFunc) {
	g.GET("", a.getBooks)
	g.GET("/bestrating", a.getBestRated)
	g.GET("/:id", a.getBook)

	protected := g.Group("")
	protected.Use(auth)
	{
		protected.POST("", a.createBook)
		protected.PUT("/:id", a.updateBook)
		protected.DELETE("/:id", a.deleteBook)
		protected.POST("/:id/rating", a.rateBook)
	}
}

func (a *BookController) getBooks(c *gin.Context) {
	books, err := a.bookService.GetBooks()
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (a *BookController) getBestRated(c *gin.Context) {
	books, err := a.bookService.GetBestRated()
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (a *BookController) getBook(c *gin.Context) {
	id, err := bookId(c)
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	book, err := a.bookService.GetBook(id)
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (a *BookController) createBook(c *gin.Context) {
	payload, imageUrl, err := a.bindBookForm(c)
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	userId := middleware.GetUserId(c)
	if _, err := a.bookService.CreateBook(userId, payload, imageUrl); err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	jsonMsg(c, http.StatusCreated, "book created")
}

func (a *BookController) updateBook(c *gin.Context) {
	id, err := bookId(c)
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	payload, imageUrl, err := a.bindBookForm(c)
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	userId := middleware.GetUserId(c)
	if err := a.bookService.UpdateBook(userId, id, payload, imageUrl); err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	jsonMsg(c, http.StatusOK, "book updated")
}

func (a *BookController) deleteBook(c *gin.Context) {
	id, err := bookId(c)
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	userId := middleware.GetUserId(c)
	if err := a.bookService.DeleteBook(userId, id); err != nil {
		jsonError(c, err, http.StatusInternalServerError)
		return
	}
	jsonMsg(c, http.StatusOK, "book deleted")
}

type ratingReq struct {
	Rating *int `json:"rating" binding:"required"`
}

func (a *BookController) rateBook(c *gin.Context) {
	id, err := bookId(c)
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	var req ratingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, fmt.Errorf("malformed rating: %w", common.ErrValidation), http.StatusBadRequest)
		return
	}
	userId := middleware.GetUserId(c)
	book, err := a.bookService.RateBook(userId, id, *req.Rating)
	if err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, book)
}

// bindBookForm reads the book payload from either a multipart form (a
// `book` JSON field plus an optional `image` file) or a plain JSON body.
// A supplied image is run through the pipeline and its public URL is
// returned alongside the payload.
func (a *BookController) bindBookForm(c *gin.Context) (*service.BookPayload, string, error) {
	payload := &service.BookPayload{}

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(payload); err != nil {
			return nil, "", fmt.Errorf("malformed book data: %w", common.ErrValidation)
		}
		return payload, "", nil
	}

	raw := c.PostForm("book")
	if raw == "" {
		return nil, "", fmt.Errorf("missing book field: %w", common.ErrValidation)
	}
	if err := json.Unmarshal([]byte(raw), payload); err != nil {
		return nil, "", fmt.Errorf("malformed book data: %w", common.ErrValidation)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// The image part is optional.
		return payload, "", nil
	}

	name, err := a.storeImage(fileHeader)
	if err != nil {
		return nil, "", err
	}
	return payload, imageUrl(c, name), nil
}

func (a *BookController) storeImage(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("unreadable image upload: %w", common.ErrValidation)
	}
	defer file.Close()
	return a.imageService.Process(file, fileHeader.Filename)
}

// imageUrl builds the public URL of a stored image for the current host.
func imageUrl(c *gin.Context, name string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/images/%s", scheme, c.Request.Host, name)
}

func bookId(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book id %q: %w", c.Param("id"), common.ErrValidation)
	}
	return id, nil
}
