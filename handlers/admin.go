package handlers

import (
	"net/http"
	"strconv"

	recordsRepo "medibook/database/repository/records"
	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the practice dashboard: confirmed appointment
// records and service health.
type AdminHandler struct {
	Records recordsRepo.AppointmentRecordRepository
}

func NewAdminHandler(records recordsRepo.AppointmentRecordRepository) *AdminHandler {
	return &AdminHandler{Records: records}
}

// ListAppointments returns recent appointment records, newest first.
// Optional query params: limit (default 50), email (filter by customer).
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		records, err := h.Records.ListByCustomer(c.Request.Context(), email)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": records})
		return
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 50
	}
	records, err := h.Records.ListRecent(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": records})
}

// Health reports liveness.
func (h *AdminHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
