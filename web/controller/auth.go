package controller

import (
	"errors"
	"fmt"
	"net/http"

	"bookshelf/util/common"
	"bookshelf/web/entity"
	"bookshelf/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController handles signup and login.
type AuthController struct {
	userService *service.UserService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{userService: service.NewUserService()}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/signup", a.signup)
	g.POST("/login", a.login)
}

type credentialsReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) signup(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, fmt.Errorf("malformed credentials: %w", common.ErrValidation), http.StatusBadRequest)
		return
	}
	if _, err := a.userService.SignUp(req.Email, req.Password); err != nil {
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	jsonMsg(c, http.StatusCreated, "user created")
}

func (a *AuthController) login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, fmt.Errorf("malformed credentials: %w", common.ErrValidation), http.StatusBadRequest)
		return
	}
	userId, token, err := a.userService.Login(req.Email, req.Password)
	if err != nil {
		// An unknown email answers like a bad password so the login
		// endpoint cannot be used to enumerate accounts.
		if errors.Is(err, common.ErrNotFound) {
			err = fmt.Errorf("bad credentials: %w", common.ErrUnauthorized)
		}
		jsonError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, entity.LoginResult{UserId: userId, Token: token})
}
