package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"medibook/models"
	"medibook/services/booking"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionTTL = 30 * time.Minute

// BookingHandler exposes the booking wizard over HTTP. It owns session
// persistence: sessions are JSON blobs in redis keyed by session ID, and
// every transition loads, mutates, and re-saves the value.
type BookingHandler struct {
	Service      booking.BookingSessionService
	Availability *booking.AvailabilityService
	WindowDays   int
	SlotDuration time.Duration
	Logger       *zap.Logger
}

func NewBookingHandler(
	service booking.BookingSessionService,
	availability *booking.AvailabilityService,
	windowDays int,
	slotDuration time.Duration,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		Service:      service,
		Availability: availability,
		WindowDays:   windowDays,
		SlotDuration: slotDuration,
		Logger:       logger,
	}
}

// GetSlots returns the current availability grid for the booking window
// without starting a session.
func (h *BookingHandler) GetSlots(c *gin.Context) {
	loc := h.Availability.Hours.Location
	if loc == nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	rangeStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	rangeEnd := rangeStart.AddDate(0, 0, h.WindowDays)

	slots, err := h.Availability.GetAvailableSlots(c.Request.Context(), rangeStart, rangeEnd, h.SlotDuration)
	if err != nil {
		h.respondError(c, "fetch slots", err, false)
		return
	}
	c.JSON(http.StatusOK, models.BookingSessionResponse{Slots: slots})
}

// StartSession creates a new booking session seeded with availability.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		Category string `json:"category"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.StartSession(c.Request.Context(), input.Category, input.Email)
	if err != nil {
		h.respondError(c, "start session", err, false)
		return
	}
	if err := h.saveSession(c.Request.Context(), session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.BookingSessionResponse{Session: session, Slots: session.Availability})
}

// SelectSlot records the chosen slot and moves to detail collection.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var input struct {
		Slot models.Slot `json:"slot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	if err := h.Service.SelectSlot(c.Request.Context(), session, input.Slot); err != nil {
		h.respondError(c, "select slot", err, true)
		return
	}
	if err := h.saveSession(c.Request.Context(), session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.BookingSessionResponse{Session: session})
}

// SubmitDetails validates the customer form and produces a payment link.
func (h *BookingHandler) SubmitDetails(c *gin.Context) {
	var input struct {
		Customer models.CustomerDetails `json:"customer"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	if err := h.Service.SubmitDetails(c.Request.Context(), session, input.Customer); err != nil {
		// Details and slot survive a payment-link failure; persist them.
		if saveErr := h.saveSession(c.Request.Context(), session); saveErr != nil {
			h.Logger.Warn("failed to persist session after error", zap.Error(saveErr))
		}
		h.respondError(c, "generate payment link", err, true)
		return
	}
	if err := h.saveSession(c.Request.Context(), session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.BookingSessionResponse{Session: session})
}

// PaymentComplete is the user's payment-completed signal: it triggers the
// confirmation write. Payment is not verified with the gateway.
func (h *BookingHandler) PaymentComplete(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	record, warning, err := h.Service.CompletePayment(c.Request.Context(), session)
	if err != nil {
		// The session stays at the payment step so the user can retry
		// without paying again.
		if saveErr := h.saveSession(c.Request.Context(), session); saveErr != nil {
			h.Logger.Warn("failed to persist session after error", zap.Error(saveErr))
		}
		h.respondError(c, "confirm appointment", err, true)
		return
	}

	if err := h.saveSession(c.Request.Context(), session); err != nil {
		h.Logger.Warn("failed to persist completed session", zap.Error(err))
	}
	c.JSON(http.StatusOK, models.BookingSessionResponse{
		Session: session,
		Record:  record,
		Warning: warning,
	})
}

// Back performs a backward wizard transition.
func (h *BookingHandler) Back(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	if err := h.Service.Back(session); err != nil {
		h.respondError(c, "navigate back", err, true)
		return
	}
	if err := h.saveSession(c.Request.Context(), session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.BookingSessionResponse{Session: session})
}

// Cancel abandons the session.
func (h *BookingHandler) Cancel(c *gin.Context) {
	sessionID := c.Param("sessionID")
	cacheClient := utils.GetSessionCacheClient()
	if err := cacheClient.Del(c.Request.Context(), sessionID).Err(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *BookingHandler) loadSession(c *gin.Context) (*models.BookingSession, bool) {
	sessionID := c.Param("sessionID")
	cacheClient := utils.GetSessionCacheClient()

	data, err := cacheClient.Get(c.Request.Context(), sessionID).Result()
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", sessionID)
		return nil, false
	}

	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to parse booking session", err.Error())
		return nil, false
	}
	return &session, true
}

func (h *BookingHandler) saveSession(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return utils.GetSessionCacheClient().Set(ctx, session.SessionID, data, sessionTTL).Err()
}

// respondError maps booking error codes to HTTP statuses and reports
// which step failed plus whether prior input survived.
func (h *BookingHandler) respondError(c *gin.Context, step string, err error, inputPreserved bool) {
	status := http.StatusInternalServerError
	switch booking.ErrorCode(err) {
	case booking.CodeCalendarUnavailable:
		status = http.StatusServiceUnavailable
	case booking.CodeSlotNoLongerAvailable:
		status = http.StatusConflict
	case booking.CodeSlotNotOffered, booking.CodeInvalidDetails, booking.CodeInvalidTransition:
		status = http.StatusBadRequest
	case booking.CodePaymentLinkFailed, booking.CodeCalendarWriteFailed:
		status = http.StatusBadGateway
	}

	h.Logger.Warn("booking step failed",
		zap.String("step", step),
		zap.Bool("inputPreserved", inputPreserved),
		zap.Error(err))
	c.JSON(status, models.BookingSessionResponse{
		StepFailed:     step,
		InputPreserved: inputPreserved,
		Warning:        err.Error(),
	})
}
