package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/controllers"
	"github.com/texcare/texcare360-backend/models"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	machineCtl := controllers.NewMachineController(s)
	techCtl := controllers.NewTechnicianController(s)
	logCtl := controllers.NewLogController(s)
	invCtl := controllers.NewInventoryController(s)
	stockCtl := controllers.NewStockHistoryController(s)
	dashCtl := controllers.NewDashboardController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.Tokens, s.Repo, a.Config)
	adminMW := app.RoleRequired(models.RoleAdmin)
	stockMW := app.RoleRequired(models.RoleAdmin, models.RoleManager)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// 认证（公开+受保护）
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
	}
	authed := auth.Group("", authMW, seenMW)
	{
		authed.POST("/logout", authCtl.Logout)
		authed.GET("/me", authCtl.Me)
	}

	// ------------------------------
	// 机器与指派
	// ------------------------------
	machines := r.Group("/api/machines", authMW, seenMW)
	{
		machines.GET("", machineCtl.List)
		machines.GET("/:id", machineCtl.Get)
		machines.POST("", machineCtl.Create)
		machines.PUT("/:id", machineCtl.Update)
		machines.DELETE("/:id", adminMW, machineCtl.Delete)

		machines.POST("/:id/assign", machineCtl.Assign)
		machines.POST("/:id/unassign", machineCtl.Unassign)
		machines.POST("/:id/auto-assign", machineCtl.AutoAssign)
	}

	// ------------------------------
	// 技师
	// ------------------------------
	techs := r.Group("/api/technicians", authMW, seenMW)
	{
		techs.GET("", techCtl.List)
		techs.POST("", techCtl.Create)
		techs.PUT("/:id/status", techCtl.UpdateStatus)
		techs.DELETE("/:id", adminMW, techCtl.Delete)
	}

	// ------------------------------
	// 维护日志
	// ------------------------------
	logs := r.Group("/api/logs", authMW, seenMW)
	{
		logs.GET("", logCtl.List)
		logs.POST("", logCtl.Create)
		logs.PUT("/:id", logCtl.Update)
		logs.DELETE("/:id", adminMW, logCtl.Delete)
	}

	// ------------------------------
	// 备件库存与流水
	// ------------------------------
	inventory := r.Group("/api/inventory", authMW, seenMW)
	{
		inventory.GET("", invCtl.List)
		inventory.POST("", stockMW, invCtl.Create)
		inventory.PUT("/:id", stockMW, invCtl.Update)
		inventory.DELETE("/:id", adminMW, invCtl.Delete)
	}

	stock := r.Group("/api/stock-history", authMW, seenMW)
	{
		stock.GET("", stockCtl.List)
		stock.POST("", stockMW, stockCtl.Create)
		stock.DELETE("/:id", adminMW, stockCtl.Delete)
	}

	// ------------------------------
	// 仪表盘
	// ------------------------------
	dash := r.Group("/api/dashboard", authMW, seenMW)
	{
		dash.GET("/summary", dashCtl.Summary)
	}
}
