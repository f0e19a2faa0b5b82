package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/disikoX/saka-backend/internal/domain"
	"github.com/disikoX/saka-backend/internal/service/pause"
	"github.com/disikoX/saka-backend/internal/service/schedule"
)

type PlanningHandler struct {
	schedule *schedule.Service
	now      func() time.Time
}

func NewPlanningHandler(scheduleService *schedule.Service) *PlanningHandler {
	return &PlanningHandler{
		schedule: scheduleService,
		now:      time.Now,
	}
}

type slotRequest struct {
	Time    string `json:"time" binding:"required"`
	Enabled bool   `json:"enabled"`
}

type slotResponse struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Enabled bool   `json:"enabled"`
}

func (h *PlanningHandler) HandleListSlots(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	slots, err := h.schedule.Slots(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}

	out := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slotResponse{ID: slot.ID, Time: slot.Time, Enabled: slot.Enabled})
	}
	c.JSON(http.StatusOK, gin.H{"slots": out})
}

func (h *PlanningHandler) HandleCreateSlot(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	slotID, err := h.schedule.CreateSlot(c.Request.Context(), userID, c.Param("id"), domain.TimeSlot{
		Time:    req.Time,
		Enabled: req.Enabled,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidSlotTime), errors.Is(err, domain.ErrInvalidSlotData):
		respondError(c, http.StatusUnprocessableEntity, err)
	case err != nil:
		respondError(c, http.StatusBadGateway, err)
	default:
		c.JSON(http.StatusCreated, slotResponse{ID: slotID, Time: req.Time, Enabled: req.Enabled})
	}
}

func (h *PlanningHandler) HandleUpdateSlot(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	slotID := c.Param("slotId")
	err = h.schedule.UpdateSlot(c.Request.Context(), userID, c.Param("id"), slotID, domain.TimeSlot{
		Time:    req.Time,
		Enabled: req.Enabled,
	})
	switch {
	case errors.Is(err, domain.ErrReservedSlotKey):
		respondError(c, http.StatusForbidden, err)
	case errors.Is(err, domain.ErrInvalidSlotTime), errors.Is(err, domain.ErrInvalidSlotData):
		respondError(c, http.StatusUnprocessableEntity, err)
	case err != nil:
		respondError(c, http.StatusBadGateway, err)
	default:
		c.JSON(http.StatusOK, slotResponse{ID: slotID, Time: req.Time, Enabled: req.Enabled})
	}
}

func (h *PlanningHandler) HandleDeleteSlot(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	err = h.schedule.DeleteSlot(c.Request.Context(), userID, c.Param("id"), c.Param("slotId"))
	switch {
	case errors.Is(err, domain.ErrReservedSlotKey):
		respondError(c, http.StatusForbidden, err)
	case err != nil:
		respondError(c, http.StatusBadGateway, err)
	default:
		c.Status(http.StatusNoContent)
	}
}

type breakRequest struct {
	Duration *int `json:"duration" binding:"required"`
	Active   bool `json:"active"`
}

func (h *PlanningHandler) HandleGetBreak(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	cfg, err := h.schedule.BreakInfo(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	if cfg == nil {
		c.JSON(http.StatusOK, gin.H{"break": nil})
		return
	}

	resumeTime, paused := pause.ResumeTime(h.now(), cfg.DurationHours, cfg.Active)
	resp := gin.H{
		"duration": cfg.DurationHours,
		"active":   cfg.Active,
	}
	if paused {
		resp["resumeTime"] = resumeTime
	}
	c.JSON(http.StatusOK, gin.H{"break": resp})
}

func (h *PlanningHandler) HandleSetBreak(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	var req breakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	err = h.schedule.ConfigureBreak(c.Request.Context(), userID, c.Param("id"), domain.BreakConfig{
		DurationHours: *req.Duration,
		Active:        req.Active,
	})
	switch {
	case errors.Is(err, domain.ErrNegativeDuration):
		respondError(c, http.StatusUnprocessableEntity, err)
	case err != nil:
		respondError(c, http.StatusBadGateway, err)
	default:
		c.JSON(http.StatusOK, gin.H{"duration": *req.Duration, "active": req.Active})
	}
}

// HandleNextDistribution reports the next planned distribution clock time.
// When a break is active it also reports when feeding resumes, so clients
// can show both without a second round trip.
func (h *PlanningHandler) HandleNextDistribution(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}
	distributorID := c.Param("id")
	now := h.now()

	next, ok, err := h.schedule.NextDistributionTime(c.Request.Context(), userID, distributorID, now)
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}

	resp := gin.H{}
	if ok {
		resp["nextTime"] = next
	} else {
		resp["nextTime"] = nil
	}

	cfg, err := h.schedule.BreakInfo(c.Request.Context(), userID, distributorID)
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	if cfg != nil {
		if resumeTime, paused := pause.ResumeTime(now, cfg.DurationHours, cfg.Active); paused {
			resp["resumeTime"] = resumeTime
		}
	}

	c.JSON(http.StatusOK, resp)
}
