package main

import (
	"github.com/sirupsen/logrus"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/config"
	"github.com/texcare/texcare360-backend/routes"
)

func main() {
	config.LoadEnv()
	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/api/health", func(c *app.Ctx) {
		sqlDB, err := application.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(500, app.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(200, app.H{"ok": true})
	})

	routes.RegisterRoutes(r, application)

	port := config.Get("PORT", "5000")
	logrus.Infof("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
