package handlers

import (
	"errors"
	"net/http"

	"mechradii/middleware"
	"mechradii/services/mechanic"
	"mechradii/services/user"
	"mechradii/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MechanicHandler exposes mechanic registry endpoints.
type MechanicHandler struct {
	MechanicService mechanic.MechanicService
}

func NewMechanicHandler(svc mechanic.MechanicService) *MechanicHandler {
	return &MechanicHandler{MechanicService: svc}
}

// RegisterMechanicHandler handles POST /mechanics/register. It works both
// signed in (upgrades the account) and signed out (creates the account too).
func (h *MechanicHandler) RegisterMechanicHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req mechanic.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actingUserID, _ := middleware.CurrentUserID(c)
	resp, err := h.MechanicService.RegisterMechanic(actingUserID, req)
	if err != nil {
		var mve mechanic.ValidationError
		var uve user.ValidationError
		switch {
		case errors.As(err, &mve):
			c.JSON(http.StatusBadRequest, gin.H{"error": mve.Msg})
		case errors.As(err, &uve):
			c.JSON(http.StatusBadRequest, gin.H{"error": uve.Msg})
		case errors.Is(err, user.ErrEmailInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case errors.Is(err, mechanic.ErrAlreadyMechanic):
			c.JSON(http.StatusConflict, gin.H{"error": "Account already has a mechanic listing"})
		default:
			logger.Error("Mechanic registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed, please try again"})
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMechanicsHandler handles GET /mechanics?service=&sort=.
func (h *MechanicHandler) ListMechanicsHandler(c *gin.Context) {
	mechanics, err := h.MechanicService.ListMechanics(c.Query("service"), c.Query("sort"))
	if err != nil {
		var ve mechanic.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
			return
		}
		utils.GetLogger().Error("Mechanic listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Listing failed, please try again"})
		return
	}
	c.JSON(http.StatusOK, mechanics)
}

// GetMechanicHandler handles GET /mechanics/:id.
func (h *MechanicHandler) GetMechanicHandler(c *gin.Context) {
	rec, err := h.MechanicService.GetMechanicByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, mechanic.ErrMechanicNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mechanic not found"})
			return
		}
		utils.GetLogger().Error("Mechanic lookup failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed, please try again"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateMechanicHandler handles PUT /mechanics/me.
func (h *MechanicHandler) UpdateMechanicHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var req mechanic.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.MechanicService.UpdateMechanic(userID, req)
	if err != nil {
		var ve mechanic.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
		case errors.Is(err, mechanic.ErrMechanicNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Mechanic not found"})
		default:
			utils.GetLogger().Error("Mechanic update failed", zap.String("id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed, please try again"})
		}
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ToggleAvailabilityHandler handles PUT /mechanics/me/availability.
func (h *MechanicHandler) ToggleAvailabilityHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	status, err := h.MechanicService.ToggleAvailability(userID)
	if err != nil {
		if errors.Is(err, mechanic.ErrMechanicNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mechanic not found"})
			return
		}
		utils.GetLogger().Error("Availability toggle failed", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed, please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability_status": status})
}
