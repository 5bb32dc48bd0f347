package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/db"
	"github.com/texcare/texcare360-backend/models"
)

// newTestServer wires the controllers over an in-memory sqlite database.
// Redis-backed pieces (token revocation, last-seen throttle) stay out; the
// middleware treats a nil token store as "nothing revoked".
func newTestServer(t *testing.T) (*gin.Engine, *Srv) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	s := &Srv{
		Repo: db.NewRepo(gdb),
		Log:  log,
		Cfg: app.Config{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
			WebOrigin: "http://localhost:3000",
		},
	}

	r := gin.New()
	authCtl := NewAuthController(s)
	machineCtl := NewMachineController(s)
	techCtl := NewTechnicianController(s)
	logCtl := NewLogController(s)
	invCtl := NewInventoryController(s)
	stockCtl := NewStockHistoryController(s)
	dashCtl := NewDashboardController(s)

	authMW := app.AuthRequired(nil, s.Repo, s.Cfg)
	adminMW := app.RoleRequired(models.RoleAdmin)

	auth := r.Group("/api/auth")
	auth.POST("/signup", authCtl.Signup)
	auth.POST("/login", authCtl.Login)
	auth.POST("/logout", authMW, authCtl.Logout)
	auth.GET("/me", authMW, authCtl.Me)

	machines := r.Group("/api/machines", authMW)
	machines.GET("", machineCtl.List)
	machines.GET("/:id", machineCtl.Get)
	machines.POST("", machineCtl.Create)
	machines.PUT("/:id", machineCtl.Update)
	machines.DELETE("/:id", adminMW, machineCtl.Delete)
	machines.POST("/:id/assign", machineCtl.Assign)
	machines.POST("/:id/unassign", machineCtl.Unassign)
	machines.POST("/:id/auto-assign", machineCtl.AutoAssign)

	techs := r.Group("/api/technicians", authMW)
	techs.GET("", techCtl.List)
	techs.POST("", techCtl.Create)
	techs.PUT("/:id/status", techCtl.UpdateStatus)
	techs.DELETE("/:id", adminMW, techCtl.Delete)

	logs := r.Group("/api/logs", authMW)
	logs.GET("", logCtl.List)
	logs.POST("", logCtl.Create)
	logs.PUT("/:id", logCtl.Update)
	logs.DELETE("/:id", adminMW, logCtl.Delete)

	inventory := r.Group("/api/inventory", authMW)
	inventory.GET("", invCtl.List)
	inventory.POST("", invCtl.Create)
	inventory.PUT("/:id", invCtl.Update)
	inventory.DELETE("/:id", adminMW, invCtl.Delete)

	stock := r.Group("/api/stock-history", authMW)
	stock.GET("", stockCtl.List)
	stock.POST("", stockCtl.Create)
	stock.DELETE("/:id", adminMW, stockCtl.Delete)

	r.GET("/api/dashboard/summary", authMW, dashCtl.Summary)

	return r, s
}

// signup registers a user and returns the issued token cookie.
func signup(t *testing.T, r *gin.Engine, name, email, role string) *http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/signup", map[string]any{
		"name": name, "email": email, "password": "s3cret!", "role": role,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	for _, ck := range w.Result().Cookies() {
		if ck.Name == app.TokenCookie {
			return ck
		}
	}
	t.Fatalf("no token cookie in signup response")
	return nil
}

func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
