package handlers

import (
	"errors"
	"net/http"

	"mechradii/middleware"
	"mechradii/services/review"
	"mechradii/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes review endpoints.
type ReviewHandler struct {
	ReviewService review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{ReviewService: svc}
}

// SubmitReviewHandler handles POST /reviews.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return
	}

	var req review.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rev, err := h.ReviewService.SubmitReview(userID, req)
	if err != nil {
		var ve review.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
		case errors.Is(err, review.ErrMechanicNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Mechanic not found"})
		default:
			utils.GetLogger().Error("Review submission failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Review submission failed, please try again"})
		}
		return
	}
	c.JSON(http.StatusCreated, rev)
}

// ListReviewsHandler handles GET /mechanics/:id/reviews.
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	reviews, err := h.ReviewService.ListReviews(c.Param("id"))
	if err != nil {
		if errors.Is(err, review.ErrMechanicNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mechanic not found"})
			return
		}
		utils.GetLogger().Error("Review listing failed", zap.String("mechanic_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Listing failed, please try again"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}
