package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/disikoX/saka-backend/internal/domain"
	"github.com/disikoX/saka-backend/internal/service/alert"
	"github.com/disikoX/saka-backend/internal/service/device"
	"github.com/disikoX/saka-backend/internal/service/dispense"
	"github.com/disikoX/saka-backend/internal/service/history"
	"github.com/disikoX/saka-backend/internal/service/settings"
	"github.com/disikoX/saka-backend/internal/service/watch"
)

type DistributorHandler struct {
	devices    *device.Service
	settings   *settings.Service
	observer   *watch.Observer
	dispatcher *dispense.Dispatcher
	history    *history.Service
}

func NewDistributorHandler(
	devices *device.Service,
	settingsService *settings.Service,
	observer *watch.Observer,
	dispatcher *dispense.Dispatcher,
	historyService *history.Service,
) *DistributorHandler {
	return &DistributorHandler{
		devices:    devices,
		settings:   settingsService,
		observer:   observer,
		dispatcher: dispatcher,
		history:    historyService,
	}
}

func (h *DistributorHandler) HandleList(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	ids, err := h.devices.Distributors(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"distributors": ids})
}

func (h *DistributorHandler) HandleAssign(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	err = h.devices.AssignToUser(c.Request.Context(), userID, c.Param("id"))
	switch {
	case errors.Is(err, domain.ErrDistributorMissing):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrAlreadyAssigned):
		respondError(c, http.StatusConflict, err)
	case err != nil:
		respondError(c, http.StatusBadGateway, err)
	default:
		c.JSON(http.StatusOK, gin.H{"assigned": true})
	}
}

func (h *DistributorHandler) HandleStatus(c *gin.Context) {
	status, ok, err := h.devices.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *DistributorHandler) HandleCapacity(c *gin.Context) {
	capacity, ok, err := h.devices.Capacity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"capacity": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"capacity": capacity})
}

func (h *DistributorHandler) HandleCurrentWeight(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	weight, err := h.observer.CurrentWeight(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weight": weight})
}

// HandleWeightStream serves the live weight feed over server-sent events.
// The subscription handle is released when the client goes away, so a
// dropped browser tab cannot leak a store listener.
func (h *DistributorHandler) HandleWeightStream(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}
	distributorID := c.Param("id")

	type event struct {
		Weight float64           `json:"weight"`
		State  alert.Criticality `json:"state"`
	}
	events := make(chan event, 16)
	streamErrs := make(chan error, 1)

	handle, err := h.observer.ObserveCriticality(c.Request.Context(), userID, distributorID,
		func(state alert.Criticality, weight float64) {
			select {
			case events <- event{Weight: weight, State: state}:
			default:
				// Slow consumer: drop rather than block the store's
				// notification goroutine.
			}
		},
		func(err error) {
			select {
			case streamErrs <- err:
			default:
			}
		},
	)
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	defer handle.Release()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case err := <-streamErrs:
			c.SSEvent("error", gin.H{"error": err.Error()})
			return false
		case ev := <-events:
			c.SSEvent("weight", ev)
			return true
		}
	})
}

func (h *DistributorHandler) HandleTrigger(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	if err := h.dispatcher.TriggerNow(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"triggered": true})
}

type gramsRequest struct {
	Grams *int `json:"grams" binding:"required"`
}

func (h *DistributorHandler) HandleGetQuantity(c *gin.Context) {
	h.handleGetGrams(c, h.settings.Quantity, "quantity")
}

func (h *DistributorHandler) HandleSetQuantity(c *gin.Context) {
	h.handleSetGrams(c, h.settings.SetQuantity)
}

func (h *DistributorHandler) HandleGetThreshold(c *gin.Context) {
	h.handleGetGrams(c, h.settings.CriticalThreshold, "threshold")
}

func (h *DistributorHandler) HandleSetThreshold(c *gin.Context) {
	h.handleSetGrams(c, h.settings.SetCriticalThreshold)
}

func (h *DistributorHandler) handleGetGrams(
	c *gin.Context,
	read func(ctx context.Context, userID, distributorID string) (int, bool, error),
	field string,
) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	grams, ok, err := read(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{field: nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{field: grams})
}

func (h *DistributorHandler) handleSetGrams(
	c *gin.Context,
	write func(ctx context.Context, userID, distributorID string, grams int) error,
) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	var req gramsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	err = write(c.Request.Context(), userID, c.Param("id"), *req.Grams)
	switch {
	case errors.Is(err, domain.ErrQuantityOutOfRange):
		respondError(c, http.StatusUnprocessableEntity, err)
	case err != nil:
		respondError(c, http.StatusBadGateway, err)
	default:
		c.JSON(http.StatusOK, gin.H{"grams": *req.Grams})
	}
}

type historyEntryRequest struct {
	Success  *bool `json:"success" binding:"required"`
	Time     int64 `json:"time"`
	Quantity int   `json:"quantity"`
}

func (h *DistributorHandler) HandleRecordHistory(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	var req historyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Time == 0 {
		req.Time = time.Now().UnixMilli()
	}

	entryID, err := h.history.Record(c.Request.Context(), userID, c.Param("id"), domain.HistoryEntry{
		Success:  *req.Success,
		Time:     req.Time,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entryID})
}

func (h *DistributorHandler) HandleHistoryStats(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err)
		return
	}

	stats, err := h.history.SuccessStatsFor(c.Request.Context(), userID, c.Param("id"), time.Now())
	if err != nil {
		respondError(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
