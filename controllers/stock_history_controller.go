// controllers/stock_history_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/models"
)

type StockHistoryController struct{ *Srv }

func NewStockHistoryController(s *Srv) *StockHistoryController {
	return &StockHistoryController{Srv: s}
}

// GET /api/stock-history
func (sc *StockHistoryController) List(c *gin.Context) {
	hs, err := sc.Repo.ListStockHistory(c.Request.Context())
	if err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, hs)
}

// POST /api/stock-history
func (sc *StockHistoryController) Create(c *gin.Context) {
	var in struct {
		Action    string `json:"action"`
		Item      string `json:"item"`
		QtyChange int    `json:"qty_change"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Action == "" || in.Item == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "action and item are required"})
		return
	}
	_, actor, _ := app.CurrentUser(c)
	h := &models.StockHistory{
		Action:    in.Action,
		Item:      in.Item,
		QtyChange: in.QtyChange,
		User:      actor,
	}
	if err := sc.Repo.CreateStockHistory(c.Request.Context(), h); err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, h)
}

// DELETE /api/stock-history/:id (administrative override; the trail is
// otherwise append-only)
func (sc *StockHistoryController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := sc.Repo.DeleteStockHistory(c.Request.Context(), id); err != nil {
		sc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Stock history deleted"})
}
