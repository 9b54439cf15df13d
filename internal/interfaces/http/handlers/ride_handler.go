package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"ridetogether.backend/internal/domain/entities"
	domainerrors "ridetogether.backend/internal/domain/errors"
	"ridetogether.backend/internal/interfaces/http/middleware"
	"ridetogether.backend/internal/interfaces/http/response"
	"ridetogether.backend/internal/usecases"
	"ridetogether.backend/pkg/utils"
)

// RideHandler handles ride listing endpoints
type RideHandler struct {
	rideUsecase *usecases.RideUsecase
}

// NewRideHandler creates a new ride handler
func NewRideHandler(rideUsecase *usecases.RideUsecase) *RideHandler {
	return &RideHandler{rideUsecase: rideUsecase}
}

// Create posts a new listing for the authenticated rider
// POST /api/v1/rides
func (h *RideHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateRideInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	ride, err := h.rideUsecase.CreateRide(c.Request.Context(), user.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"success": true,
		"ride":    ride,
	})
}

// List returns the public browse feed of active listings
// GET /api/v1/rides
func (h *RideHandler) List(c *gin.Context) {
	rides, err := h.rideUsecase.ListActiveRides(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"count":   len(rides),
		"rides":   rides,
	})
}

// ListMine returns every listing of the authenticated rider
// GET /api/v1/rides/myrides
func (h *RideHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	rides, err := h.rideUsecase.ListMyRides(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"count":   len(rides),
		"rides":   rides,
	})
}

// Filter searches active listings by route and criteria
// GET /api/v1/rides/filter
func (h *RideHandler) Filter(c *gin.Context) {
	var filter entities.RideFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}
	// daysAvailable arrives comma-separated
	if days := c.Query("daysAvailable"); days != "" {
		for _, day := range strings.Split(days, ",") {
			if day = strings.TrimSpace(day); day != "" {
				filter.DaysAvailable = append(filter.DaysAvailable, day)
			}
		}
	}

	rides, err := h.rideUsecase.FilterRides(c.Request.Context(), &filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"count":   len(rides),
		"rides":   rides,
	})
}

// Get returns one listing by id
// GET /api/v1/rides/:id
func (h *RideHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid ride id"))
		return
	}

	ride, err := h.rideUsecase.GetRide(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"ride":    ride,
	})
}

// Update patches a listing. Ownership is enforced by RequireRideOwner.
// PUT /api/v1/rides/:id
func (h *RideHandler) Update(c *gin.Context) {
	ride, ok := middleware.RideFromContext(c)
	if !ok {
		response.Error(c, domainerrors.NotFound("ride not found"))
		return
	}

	var patch entities.UpdateRideInput
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BindError(c, err)
		return
	}

	updated, err := h.rideUsecase.UpdateRide(c.Request.Context(), ride.ID, &patch)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"ride":    updated,
	})
}

// Delete removes a listing. Ownership is enforced by RequireRideOwner.
// DELETE /api/v1/rides/:id
func (h *RideHandler) Delete(c *gin.Context) {
	ride, ok := middleware.RideFromContext(c)
	if !ok {
		response.Error(c, domainerrors.NotFound("ride not found"))
		return
	}

	if err := h.rideUsecase.DeleteRide(c.Request.Context(), ride.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": "ride deleted",
	})
}

// AdminList returns all listings with moderation detail, paginated
// GET /api/v1/rides/admin/all
func (h *RideHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	rides, meta, err := h.rideUsecase.ListAllRidesForAdmin(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":    true,
		"rides":      rides,
		"pagination": meta,
	})
}

type flagRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Flag marks a listing for review
// PUT /api/v1/rides/:id/flag
func (h *RideHandler) Flag(c *gin.Context) {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid ride id"))
		return
	}

	var req flagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ride, err := h.rideUsecase.FlagRide(c.Request.Context(), id, admin.ID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"ride":    ride,
	})
}

type moderateRequest struct {
	ModerationStatus entities.ModerationStatus `json:"moderationStatus" binding:"required"`
	AdminNotes       string                    `json:"adminNotes"`
}

// Moderate applies an admin review decision
// PUT /api/v1/rides/:id/moderate
func (h *RideHandler) Moderate(c *gin.Context) {
	admin, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid ride id"))
		return
	}

	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	ride, err := h.rideUsecase.ModerateRide(c.Request.Context(), id, admin.ID, req.ModerationStatus, req.AdminNotes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"ride":    ride,
	})
}

// AdminDelete removes any listing regardless of owner
// DELETE /api/v1/rides/admin/:id
func (h *RideHandler) AdminDelete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid ride id"))
		return
	}

	if err := h.rideUsecase.AdminDeleteRide(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": "ride deleted",
	})
}
