package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTask gets one machine assigned to one technician via the API and
// returns the cookie for further calls. Log id is 1.
func setupTask(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	ck := signup(t, r, "Ada", "ada@texcare.local", "Admin")
	w := doJSON(r, http.MethodPost, "/api/machines", map[string]any{"name": "M1", "status": "Unhealthy"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/technicians", map[string]any{"name": "T1", "skill": "Electrical"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/machines/1/assign", map[string]any{"techId": 1}, ck)
	require.Equal(t, http.StatusOK, w.Code)
	return ck
}

func TestCompleteLogOverHTTP(t *testing.T) {
	r, _ := newTestServer(t)
	ck := setupTask(t, r)

	w := doJSON(r, http.MethodPost, "/api/inventory", map[string]any{"name": "Bearing", "quantity": 10}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPut, "/api/logs/1", map[string]any{
		"completed": true, "partName": "Bearing", "quantity": 4,
	}, ck)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	logRow := out["log"].(map[string]any)
	assert.Equal(t, true, logRow["completed"])
	assert.Equal(t, "4x Bearing", logRow["partsUsed"])
	// 10-4=6 > threshold, no advisory
	assert.Nil(t, out["lowStock"])

	// machine healthy, technician available again
	w = doJSON(r, http.MethodGet, "/api/machines/1", nil, ck)
	assert.Contains(t, w.Body.String(), "Healthy")
	w = doJSON(r, http.MethodGet, "/api/technicians", nil, ck)
	assert.Contains(t, w.Body.String(), "Available")

	// second completion conflicts
	w = doJSON(r, http.MethodPut, "/api/logs/1", map[string]any{"completed": true}, ck)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteLogInsufficientStockOverHTTP(t *testing.T) {
	r, _ := newTestServer(t)
	ck := setupTask(t, r)

	w := doJSON(r, http.MethodPost, "/api/inventory", map[string]any{"name": "Bearing", "quantity": 3}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPut, "/api/logs/1", map[string]any{
		"completed": true, "partName": "Bearing", "quantity": 5,
	}, ck)
	require.Equal(t, http.StatusBadRequest, w.Code)
	msg := decode(t, w)["error"].(string)
	assert.True(t, strings.Contains(msg, "T1"), msg)
	assert.True(t, strings.Contains(msg, "Bearing"), msg)

	// stock unchanged, log still open
	w = doJSON(r, http.MethodGet, "/api/inventory", nil, ck)
	assert.Contains(t, w.Body.String(), `"quantity":3`)
	w = doJSON(r, http.MethodGet, "/api/logs", nil, ck)
	assert.Contains(t, w.Body.String(), `"completed":false`)
}

func TestCompleteLogLowStockAlertOverHTTP(t *testing.T) {
	r, _ := newTestServer(t)
	ck := setupTask(t, r)

	w := doJSON(r, http.MethodPost, "/api/inventory", map[string]any{"name": "Bearing", "quantity": 8}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPut, "/api/logs/1", map[string]any{
		"completed": true, "partName": "Bearing", "quantity": 4,
	}, ck)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, true, out["lowStock"])
	assert.Contains(t, out["alert"], "Bearing")

	// completion appended exactly one Used row
	w = doJSON(r, http.MethodGet, "/api/stock-history", nil, ck)
	assert.Contains(t, w.Body.String(), `"action":"Used"`)
	assert.Contains(t, w.Body.String(), `"qtyChange":-4`)
}

func TestLogUpdateValidation(t *testing.T) {
	r, _ := newTestServer(t)
	ck := setupTask(t, r)

	w := doJSON(r, http.MethodPut, "/api/logs/1", map[string]any{"completed": false}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/logs/1", map[string]any{"completed": true, "partName": "Bearing"}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/logs/99", map[string]any{"completed": true}, ck)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndListLogs(t *testing.T) {
	r, _ := newTestServer(t)
	ck := signup(t, r, "Ada", "ada@texcare.local", "Admin")

	w := doJSON(r, http.MethodPost, "/api/machines", map[string]any{"name": "M1"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(r, http.MethodPost, "/api/technicians", map[string]any{"name": "T1", "skill": "Electrical"}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/logs", map[string]any{
		"machine": "M1", "technician": "T1", "skill": "Electrical",
	}, ck)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/api/logs", map[string]any{
		"machine": "Ghost", "technician": "T1",
	}, ck)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/logs", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"machine":"M1"`)
	assert.Contains(t, w.Body.String(), `"technician":"T1"`)
}
