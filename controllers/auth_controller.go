// controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/db"
	"github.com/texcare/texcare360-backend/models"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /api/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing required fields."})
		return
	}
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Missing required fields."})
		return
	}
	if !models.ValidRole(in.Role) {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Invalid role."})
		return
	}

	if _, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email); err == nil {
		c.JSON(http.StatusConflict, app.H{"success": false, "message": "Email already registered."})
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		ac.Log.WithError(err).Error("signup lookup")
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error during signup."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error during signup."})
		return
	}

	u := &models.User{
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		ac.Log.WithError(err).Error("signup create")
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error during signup."})
		return
	}

	if err := ac.issueToken(c.Request.Context(), c.Writer, u.ID, u.Name, u.Email, u.Role); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error during signup."})
		return
	}
	c.JSON(http.StatusCreated, app.H{"success": true, "user": u})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" || in.Password == "" {
		c.JSON(http.StatusBadRequest, app.H{"success": false, "message": "Email and password are required."})
		return
	}

	u, err := ac.Repo.FindUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"success": false, "message": "Invalid credentials."})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, app.H{"success": false, "message": "Invalid credentials."})
		return
	}

	if err := ac.issueToken(c.Request.Context(), c.Writer, u.ID, u.Name, u.Email, u.Role); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"success": false, "message": "Server error during login."})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "user": u})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if v, ok := c.Get("tokenID"); ok {
		jti, _ := v.(string)
		uid, _, _ := app.CurrentUser(c)
		if jti != "" && ac.Tokens != nil {
			_ = ac.Tokens.Revoke(c.Request.Context(), jti, uid)
		}
	}
	ac.clearTokenCookie(c.Writer)
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Logged out."})
}

// GET /api/auth/me
func (ac *AuthController) Me(c *gin.Context) {
	uid, _, _ := app.CurrentUser(c)
	u, err := ac.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"success": false, "message": "User not found."})
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "user": u})
}
