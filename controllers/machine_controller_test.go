package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texcare/texcare360-backend/models"
)

func TestMachineCRUD(t *testing.T) {
	r, _ := newTestServer(t)
	ck := signup(t, r, "Ada", "ada@texcare.local", "Admin")

	// create
	w := doJSON(r, http.MethodPost, "/api/machines", map[string]any{"name": "Loom-1"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	out := decode(t, w)
	assert.Equal(t, "Healthy", out["status"])

	// missing name
	w = doJSON(r, http.MethodPost, "/api/machines", map[string]any{}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// get
	w = doJSON(r, http.MethodGet, "/api/machines/1", nil, ck)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/machines/99", nil, ck)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// partial update requires at least one field
	w = doJSON(r, http.MethodPut, "/api/machines/1", map[string]any{}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(r, http.MethodPut, "/api/machines/1", map[string]any{"status": "Unhealthy"}, ck)
	require.Equal(t, http.StatusOK, w.Code)
	out = decode(t, w)
	assert.Equal(t, "Unhealthy", out["status"])

	// list
	w = doJSON(r, http.MethodGet, "/api/machines", nil, ck)
	assert.Equal(t, http.StatusOK, w.Code)

	// delete absent
	w = doJSON(r, http.MethodDelete, "/api/machines/99", nil, ck)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignFlowOverHTTP(t *testing.T) {
	r, _ := newTestServer(t)
	ck := signup(t, r, "Ada", "ada@texcare.local", "Admin")

	w := doJSON(r, http.MethodPost, "/api/machines", map[string]any{"name": "M1", "status": "Unhealthy"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/technicians", map[string]any{"name": "T1", "skill": "Electrical"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	// auto-assign with matching skill, case-insensitive
	w = doJSON(r, http.MethodPost, "/api/machines/1/auto-assign", map[string]any{"skillRequired": "ELECTRICAL"}, ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	tech := out["technician"].(map[string]any)
	assert.Equal(t, "T1", tech["name"])
	assert.Equal(t, models.TechBusy, tech["status"])
	require.NotNil(t, out["log"])

	// assigning the now-busy technician manually conflicts
	w = doJSON(r, http.MethodPost, "/api/machines/1/assign", map[string]any{"techId": 1}, ck)
	assert.Equal(t, http.StatusConflict, w.Code)

	// no available technician left for that skill → null, not an error
	w = doJSON(r, http.MethodPost, "/api/machines", map[string]any{"name": "M2"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/machines/2/auto-assign", map[string]any{"skillRequired": "Electrical"}, ck)
	require.Equal(t, http.StatusOK, w.Code)
	out = decode(t, w)
	assert.Nil(t, out["technician"])

	// unassign frees both sides
	w = doJSON(r, http.MethodPost, "/api/machines/1/unassign", map[string]any{"techId": 1}, ck)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/machines/1/unassign", map[string]any{"techId": 1}, ck)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAssignValidation(t *testing.T) {
	r, _ := newTestServer(t)
	ck := signup(t, r, "Ada", "ada@texcare.local", "Admin")

	w := doJSON(r, http.MethodPost, "/api/machines", map[string]any{"name": "M1"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/machines/1/assign", map[string]any{}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/machines/1/assign", map[string]any{"techId": 42}, ck)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/api/machines/1/auto-assign", map[string]any{}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
