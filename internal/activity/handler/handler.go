package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/fitlog/fitlog/backend/go-services/internal/activity"
	"github.com/fitlog/fitlog/backend/go-services/internal/activity/service"
)

type Handler struct {
	svc *service.Service
}

// RegisterActivityRoutes mounts the activity API on r. All routes are anonymous.
func RegisterActivityRoutes(r gin.IRouter, svc *service.Service) {
	h := &Handler{svc: svc}
	r.POST("/log-activity", h.LogActivity)
	r.GET("/activities/:userId", h.GetActivities)
	r.GET("/activities/summary/:userId", h.GetSummary)
	r.PUT("/activities/:activityId", h.UpdateActivity)
	r.DELETE("/activities/:activityId", h.DeleteActivity)

	r.GET("/activities/:userId/export", h.ExportCSV)
	r.POST("/activities/:userId/export", h.ExportToObjectStore)
}

type logRequest struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Type            string          `json:"type"`
	DurationMinutes json.RawMessage `json:"durationMinutes"`
	Notes           string          `json:"notes"`
	Weight          *float64        `json:"weight"`
}

type updateRequest struct {
	UserID          string          `json:"userId"`
	Type            *string         `json:"type"`
	DurationMinutes json.RawMessage `json:"durationMinutes"`
	Notes           *string         `json:"notes"`
}

// bindJSON decodes the raw body into dst; any failure is an invalid request.
func bindJSON(c *gin.Context, dst interface{}) bool {
	body, err := c.GetRawData()
	if err == nil {
		err = json.Unmarshal(body, dst)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return false
	}
	return true
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// wholeMinutes accepts only a JSON integer literal: 30 is valid, 30.5, "30"
// and 3e1 are not.
func wholeMinutes(raw json.RawMessage) (int, error) {
	return strconv.Atoi(string(raw))
}

func (h *Handler) LogActivity(c *gin.Context) {
	var req logRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == "" || req.Type == "" || !present(req.DurationMinutes) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	minutes, err := wholeMinutes(req.DurationMinutes)
	if err != nil || minutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duration must be a positive integer"})
		return
	}

	a, err := h.svc.Log(c.Request.Context(), service.LogInput{
		ID:              req.ID,
		UserID:          req.UserID,
		Type:            req.Type,
		DurationMinutes: minutes,
		Notes:           req.Notes,
		WeightKg:        req.Weight,
	})
	if err != nil {
		writeError(c, err, "Failed to insert activity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity logged", "data": a})
}

func (h *Handler) GetActivities(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err, "Error reading activities")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "items": list})
}

func (h *Handler) GetSummary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context(), service.SummaryInput{
		UserID: c.Param("userId"),
		Type:   c.Query("type"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		writeError(c, err, "Error creating summary")
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *Handler) UpdateActivity(c *gin.Context) {
	var req updateRequest
	if !bindJSON(c, &req) {
		return
	}
	in := service.UpdateInput{
		ActivityID: c.Param("activityId"),
		UserID:     req.UserID,
		Type:       req.Type,
		Notes:      req.Notes,
	}
	if present(req.DurationMinutes) {
		minutes, err := wholeMinutes(req.DurationMinutes)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Duration must be a positive integer"})
			return
		}
		in.DurationMinutes = &minutes
	}

	a, err := h.svc.Update(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, "Error updating activity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity updated", "data": a})
}

func (h *Handler) DeleteActivity(c *gin.Context) {
	id := c.Param("activityId")
	if err := h.svc.Delete(c.Request.Context(), id, c.Query("userId")); err != nil {
		writeError(c, err, "Error deleting activity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted", "id": id})
}

func (h *Handler) ExportCSV(c *gin.Context) {
	// Listing first keeps a failed export from sending a half-written attachment.
	list, err := h.svc.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err, "Error exporting activities")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+activity.ExportFilename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := activity.WriteCSV(c.Writer, list); err != nil {
		_ = c.Error(err)
	}
}

func (h *Handler) ExportToObjectStore(c *gin.Context) {
	res, err := h.svc.ExportToObjectStore(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err, "Error exporting activities")
		return
	}
	c.JSON(http.StatusOK, res)
}

// writeError maps service errors onto status codes. Storage details stay in
// the server log; the client gets storageMsg.
func writeError(c *gin.Context, err error, storageMsg string) {
	switch {
	case errors.Is(err, activity.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, activity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
	case errors.Is(err, service.ErrStoreNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrStoreNotConfigured.Error()})
	case errors.Is(err, service.ErrExportUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrExportUnavailable.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": storageMsg})
	}
}
