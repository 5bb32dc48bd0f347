// controllers/inventory_controller.go
package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/db"
	"github.com/texcare/texcare360-backend/models"
)

type InventoryController struct{ *Srv }

func NewInventoryController(s *Srv) *InventoryController { return &InventoryController{Srv: s} }

func lowStockAlert(item string, qty int) string {
	return fmt.Sprintf("Low Stock: %s has only %d left! Consider reordering.", item, qty)
}

// GET /api/inventory
func (ic *InventoryController) List(c *gin.Context) {
	items, err := ic.Repo.ListInventory(c.Request.Context())
	if err != nil {
		ic.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /api/inventory
func (ic *InventoryController) Create(c *gin.Context) {
	var in struct {
		Name     string     `json:"name"`
		Category string     `json:"category"`
		Quantity int        `json:"quantity"`
		Supplier string     `json:"supplier"`
		LeadTime int        `json:"leadTime"`
		Expiry   *time.Time `json:"expiry"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "item name is required"})
		return
	}
	if in.Quantity < 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "quantity must not be negative"})
		return
	}
	_, actor, _ := app.CurrentUser(c)
	it := &models.InventoryItem{
		Name:     in.Name,
		Category: in.Category,
		Quantity: in.Quantity,
		Supplier: in.Supplier,
		LeadTime: in.LeadTime,
		Expiry:   in.Expiry,
	}
	if err := ic.Repo.CreateInventoryItem(c.Request.Context(), it, actor); err != nil {
		ic.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, it)
}

// PUT /api/inventory/:id
func (ic *InventoryController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Name     *string    `json:"name"`
		Category *string    `json:"category"`
		Quantity *int       `json:"quantity"`
		Supplier *string    `json:"supplier"`
		LeadTime *int       `json:"leadTime"`
		Expiry   *time.Time `json:"expiry"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "quantity must not be negative"})
		return
	}
	_, actor, _ := app.CurrentUser(c)
	it, err := ic.Repo.UpdateInventoryItem(c.Request.Context(), id, db.InventoryUpdate{
		Name:     in.Name,
		Category: in.Category,
		Quantity: in.Quantity,
		Supplier: in.Supplier,
		LeadTime: in.LeadTime,
		Expiry:   in.Expiry,
	}, actor)
	if err != nil {
		ic.fail(c, err)
		return
	}
	out := app.H{"item": it}
	if it.Quantity <= db.LowStockThreshold {
		out["lowStock"] = true
		out["alert"] = lowStockAlert(it.Name, it.Quantity)
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/inventory/:id
func (ic *InventoryController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	_, actor, _ := app.CurrentUser(c)
	if err := ic.Repo.DeleteInventoryItem(c.Request.Context(), id, actor); err != nil {
		ic.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Item deleted", "id": id})
}
