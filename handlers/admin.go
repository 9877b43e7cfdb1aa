package handlers

import (
	"net/http"
	"time"

	"glamsalon/database/repository"
	"glamsalon/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the dashboard data: booking listings and simple stats.
type AdminHandler struct {
	bookings repository.BookingRepository
}

func NewAdminHandler(bookings repository.BookingRepository) *AdminHandler {
	return &AdminHandler{bookings: bookings}
}

// ListBookings returns all bookings, newest first.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.ListBookings(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "total": len(bookings)})
}

// GetStats returns booking counts per service and the number of upcoming
// bookings.
func (h *AdminHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	byService, err := h.bookings.CountByService(ctx)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute stats", err.Error())
		return
	}

	today := time.Now().Format("2006-01-02")
	upcoming, err := h.bookings.CountUpcoming(ctx, today)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute stats", err.Error())
		return
	}

	var total int64
	for _, n := range byService {
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"total_bookings": total,
		"by_service":     byService,
		"upcoming":       upcoming,
	})
}
