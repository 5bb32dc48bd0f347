// controllers/srv.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/db"
	"github.com/texcare/texcare360-backend/session"
)

type Srv struct {
	Repo   *db.Repo
	Tokens *session.TokenStore
	Log    *logrus.Logger
	Cfg    app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:   db.NewRepo(a.DB),
		Tokens: a.Tokens(),
		Log:    a.Log,
		Cfg:    a.Config,
	}
}

// --- helpers ---

// 统一设置登录 Cookie
func (s *Srv) setTokenCookie(w http.ResponseWriter, token string, maxAge time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     app.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.Cfg.SecureCookies(),
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     app.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.Cfg.SecureCookies(),
	})
}

// 登录成功：签发令牌 + 触发登录快照
func (s *Srv) issueToken(ctx context.Context, w http.ResponseWriter, userID uint, name, email, role string) error {
	if err := s.Repo.TouchUserLogin(ctx, userID); err != nil {
		// 不阻塞
		s.Log.WithError(err).Warn("touch user login")
	}
	token, jti, err := app.SignToken(s.Cfg, userID, name, email, role)
	if err != nil {
		return err
	}
	if s.Tokens != nil {
		if err := s.Tokens.Track(ctx, jti, userID); err != nil {
			s.Log.WithError(err).Warn("track token")
		}
	}
	s.setTokenCookie(w, token, s.Cfg.TokenTTL)
	return nil
}

// paramID parses the :id path segment.
func paramID(c *gin.Context) (uint, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid id"})
		return 0, false
	}
	return uint(n), true
}

// fail maps repo errors to the HTTP taxonomy: absent entity → 404, state
// precondition → 409, stock shortfall → 400 with its descriptive message,
// anything else → opaque 500.
func (s *Srv) fail(c *gin.Context, err error) {
	var stockErr *db.InsufficientStockError
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	case errors.Is(err, db.ErrTechnicianBusy),
		errors.Is(err, db.ErrTechnicianAvailable),
		errors.Is(err, db.ErrLogCompleted),
		errors.Is(err, db.ErrTechnicianHasLogs),
		errors.Is(err, db.ErrMachineHasOpenLog):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, app.H{"error": stockErr.Error()})
	default:
		s.Log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, app.H{"error": "server error"})
	}
}
