package app

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/texcare/texcare360-backend/db"
	"github.com/texcare/texcare360-backend/session"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Log    *logrus.Logger
	Config Config

	tokens *session.TokenStore
}

// Config 从环境变量读取
type Config struct {
	RedisAddr string
	RedisPwd  string
	WebOrigin string
	JWTSecret string
	TokenTTL  time.Duration
	Env       string
}

func (a *App) Tokens() *session.TokenStore { return a.tokens }

func (c Config) SecureCookies() bool {
	return c.Env == "production" || strings.HasPrefix(c.WebOrigin, "https://")
}

func MustNew() *App {
	cfg := loadConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Fatal("redis")
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router: r, DB: dbConn, RDB: rdb, Log: logger, Config: cfg,
		tokens: session.NewTokenStore(rdb, cfg.TokenTTL),
	}
	return a
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	// 令牌 7 天有效，可通过环境变量覆盖
	ttl := 7 * 24 * time.Hour
	if d, err := time.ParseDuration(get("TOKEN_TTL", "")); err == nil && d > 0 {
		ttl = d
	}
	return Config{
		RedisAddr: get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:  os.Getenv("REDIS_PASSWORD"),
		WebOrigin: get("WEB_ORIGIN", "http://localhost:3000"),
		JWTSecret: get("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  ttl,
		Env:       get("APP_ENV", "development"),
	}
}
