// controllers/technician_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/texcare/texcare360-backend/app"
	"github.com/texcare/texcare360-backend/models"
)

type TechnicianController struct{ *Srv }

func NewTechnicianController(s *Srv) *TechnicianController { return &TechnicianController{Srv: s} }

// GET /api/technicians
func (tc *TechnicianController) List(c *gin.Context) {
	ts, err := tc.Repo.ListTechnicians(c.Request.Context())
	if err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

// POST /api/technicians
func (tc *TechnicianController) Create(c *gin.Context) {
	var in struct {
		Name   string `json:"name"`
		Skill  string `json:"skill"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" || in.Skill == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "name and skill are required"})
		return
	}
	t := &models.Technician{Name: in.Name, Skill: in.Skill, Status: in.Status}
	if err := tc.Repo.CreateTechnician(c.Request.Context(), t); err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/technicians/:id/status
func (tc *TechnicianController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil ||
		(in.Status != models.TechAvailable && in.Status != models.TechBusy) {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid status"})
		return
	}
	t, err := tc.Repo.UpdateTechnicianStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /api/technicians/:id
func (tc *TechnicianController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := tc.Repo.DeleteTechnician(c.Request.Context(), id); err != nil {
		tc.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"success": true, "message": "Technician deleted successfully"})
}
