// controllers/machine_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/models"
)

type MachineController struct{ *Srv }

func NewMachineController(s *Srv) *MachineController { return &MachineController{Srv: s} }

// GET /api/machines
func (mc *MachineController) List(c *gin.Context) {
	ms, err := mc.Repo.ListMachines(c.Request.Context())
	if err != nil {
		mc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ms)
}

// GET /api/machines/:id
func (mc *MachineController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	m, err := mc.Repo.FindMachineByID(c.Request.Context(), id)
	if err != nil {
		mc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// POST /api/machines
func (mc *MachineController) Create(c *gin.Context) {
	var in struct {
		Name          string `json:"name"`
		Status        string `json:"status"`
		SkillRequired string `json:"skillRequired"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "Missing machine name"})
		return
	}
	m := &models.Machine{Name: in.Name, Status: in.Status, SkillRequired: in.SkillRequired}
	if err := mc.Repo.CreateMachine(c.Request.Context(), m); err != nil {
		mc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// PUT /api/machines/:id
func (mc *MachineController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Name   *string `json:"name"`
		Status *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Name == nil && in.Status == nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "Nothing to update"})
		return
	}
	m, err := mc.Repo.UpdateMachine(c.Request.Context(), id, in.Name, in.Status)
	if err != nil {
		mc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /api/machines/:id
func (mc *MachineController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := mc.Repo.DeleteMachine(c.Request.Context(), id); err != nil {
		mc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true})
}

// POST /api/machines/:id/assign
func (mc *MachineController) Assign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		TechID uint `json:"techId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.TechID == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "Missing techId"})
		return
	}
	res, err := mc.Repo.AssignTechnician(c.Request.Context(), id, in.TechID)
	if err != nil {
		mc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"message":    "Technician assigned successfully",
		"machineId":  id,
		"techId":     in.TechID,
		"technician": res.Technician,
		"log":        res.Log,
	})
}

// POST /api/machines/:id/unassign
func (mc *MachineController) Unassign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		TechID uint `json:"techId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.TechID == 0 {
		c.JSON(http.StatusBadRequest, app.H{"error": "Missing techId"})
		return
	}
	if err := mc.Repo.UnassignTechnician(c.Request.Context(), id, in.TechID); err != nil {
		mc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{
		"message":   "Technician unassigned successfully",
		"machineId": id,
		"techId":    in.TechID,
	})
}

// POST /api/machines/:id/auto-assign
func (mc *MachineController) AutoAssign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		SkillRequired string `json:"skillRequired"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.SkillRequired == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "Missing skillRequired"})
		return
	}
	res, err := mc.Repo.AutoAssignTechnician(c.Request.Context(), id, in.SkillRequired)
	if err != nil {
		mc.fail(c, err)
		return
	}
	if res == nil {
		// 没有匹配的空闲技师不是错误，前端走手动指派
		c.JSON(http.StatusOK, app.H{"technician": nil, "log": nil})
		return
	}
	c.JSON(http.StatusOK, app.H{"technician": res.Technician, "log": res.Log})
}
