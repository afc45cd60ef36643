package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"slotwise/models"
	"slotwise/services/availability"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the availability engine over HTTP.
type AvailabilityHandler struct {
	Calendar    availability.CalendarService
	Sessions    availability.SessionService
	Assignments availability.AssignmentResolver
	WindowDays  int
}

func (h *AvailabilityHandler) window(c *gin.Context) int {
	if raw := c.Query("window"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return h.WindowDays
}

// GetAvailableDays returns the per-day availability map over the window.
func (h *AvailabilityHandler) GetAvailableDays(c *gin.Context) {
	key := models.ParseServiceKey(c.Query("service"))
	if !key.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid service", "service query parameter is required")
		return
	}

	days := h.Calendar.AvailableDaysInWindow(c.Request.Context(), key, h.window(c))
	c.JSON(http.StatusOK, gin.H{"service": key.Raw, "days": days})
}

// GetHasAvailability is the cheap existence check over the window.
func (h *AvailabilityHandler) GetHasAvailability(c *gin.Context) {
	key := models.ParseServiceKey(c.Query("service"))
	if !key.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid service", "service query parameter is required")
		return
	}

	available := h.Calendar.HasAvailableDates(c.Request.Context(), key, h.window(c))
	c.JSON(http.StatusOK, gin.H{"service": key.Raw, "available": available})
}

// GetSlots computes the bookable slots for one chosen date.
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	key := models.ParseServiceKey(c.Query("service"))
	if !key.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid service", "service query parameter is required")
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date query parameter is required (2006-01-02)")
		return
	}

	opts := availability.SlotOptions{StaffID: c.Query("staff")}
	if raw := c.Query("duration"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid duration", "duration must be a positive number of minutes")
			return
		}
		opts.DurationMin = n
	}

	// An active session contributes the external calendar's busy time.
	if sessionID := c.Query("session"); sessionID != "" {
		ranges, err := h.Sessions.SessionBusyRanges(c.Request.Context(), sessionID)
		if err != nil {
			zap.L().Warn("could not load session busy ranges", zap.String("sessionId", sessionID), zap.Error(err))
		}
		opts.ExternalBusy = ranges
	}

	slots := h.Calendar.SlotsForDay(c.Request.Context(), key, date, opts)
	dtos := make([]models.SlotDTO, 0, len(slots))
	for _, s := range slots {
		dtos = append(dtos, s.DTO())
	}
	c.JSON(http.StatusOK, gin.H{"service": key.Raw, "date": date, "slots": dtos})
}

// GetStaffForDay lists the assignable staff for an assignment service/date.
func (h *AvailabilityHandler) GetStaffForDay(c *gin.Context) {
	key := models.ParseServiceKey(c.Query("service"))
	if !key.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid service", "service query parameter is required")
		return
	}
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "date query parameter is required (2006-01-02)")
		return
	}

	assignments := h.Assignments.AssignmentsFor(c.Request.Context(), key, date)
	c.JSON(http.StatusOK, gin.H{"service": key.Raw, "date": date, "assignments": assignments})
}

// StartSession opens an external availability session and starts polling.
func (h *AvailabilityHandler) StartSession(c *gin.Context) {
	var input struct {
		Service  string `json:"service" binding:"required"`
		Identity string `json:"identity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	key := models.ParseServiceKey(input.Service)
	if !key.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid service", "service identifier is empty")
		return
	}

	session, err := h.Sessions.StartSession(c.Request.Context(), key, input.Identity)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start availability session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": session.SessionID, "state": session.State})
}

// GetSession reports the session's fetch state and cached result size.
func (h *AvailabilityHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	session, err := h.Sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, availability.ErrSessionNotFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found", "availability session not found or expired")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load session", err.Error())
		return
	}

	ranges, err := h.Sessions.SessionBusyRanges(c.Request.Context(), sessionID)
	if err != nil {
		zap.L().Warn("could not load session busy ranges", zap.String("sessionId", sessionID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"session":    session,
		"rangeCount": len(ranges),
	})
}

// EndSession stops polling and discards the session.
func (h *AvailabilityHandler) EndSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Sessions.EndSession(c.Request.Context(), sessionID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to end session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "ended": true})
}
