// controllers/log_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/models"
)

type LogController struct{ *Srv }

func NewLogController(s *Srv) *LogController { return &LogController{Srv: s} }

// GET /api/logs
func (lc *LogController) List(c *gin.Context) {
	rows, err := lc.Repo.ListLogs(c.Request.Context())
	if err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// POST /api/logs
// Machine is addressed by name, the technician by id or by name, matching
// what the log form submits.
func (lc *LogController) Create(c *gin.Context) {
	var in struct {
		Machine    string     `json:"machine"`
		Technician string     `json:"technician"`
		TechID     uint       `json:"techId"`
		Skill      string     `json:"skill"`
		DateTime   *time.Time `json:"date_time"`
		Completed  bool       `json:"completed"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Machine == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "Machine not found"})
		return
	}

	m, err := lc.Repo.FindMachineByName(c.Request.Context(), in.Machine)
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Machine not found"})
		return
	}
	techID := in.TechID
	if techID == 0 {
		t, err := lc.Repo.FindTechnicianByName(c.Request.Context(), in.Technician)
		if err != nil {
			c.JSON(http.StatusBadRequest, app.H{"error": "Technician not found"})
			return
		}
		techID = t.ID
	}

	l := &models.MaintenanceLog{
		MachineID: m.ID,
		TechID:    techID,
		Skill:     in.Skill,
		Completed: in.Completed,
	}
	if in.DateTime != nil {
		l.DateTime = *in.DateTime
	}
	if err := lc.Repo.CreateLog(c.Request.Context(), l); err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// PUT /api/logs/:id
// Marks the log completed. When a part is named, inventory is deducted and a
// "Used" stock-history row appended, all inside the same transaction.
func (lc *LogController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Completed bool   `json:"completed"`
		PartName  string `json:"partName"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if !in.Completed {
		c.JSON(http.StatusBadRequest, app.H{"error": "a log can only be marked completed"})
		return
	}
	if in.PartName != "" && in.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "quantity must be positive"})
		return
	}

	_, actor, _ := app.CurrentUser(c)
	res, err := lc.Repo.CompleteLog(c.Request.Context(), id, in.PartName, in.Quantity, actor)
	if err != nil {
		lc.fail(c, err)
		return
	}

	out := app.H{"log": res.Log}
	if res.LowStock {
		lc.Log.WithFields(map[string]interface{}{
			"item":      res.PartUsed,
			"remaining": res.RemainingQty,
		}).Warn("low stock")
		out["lowStock"] = true
		out["alert"] = lowStockAlert(res.PartUsed, res.RemainingQty)
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /api/logs/:id
func (lc *LogController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := lc.Repo.DeleteLog(c.Request.Context(), id); err != nil {
		lc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Log deleted"})
}
