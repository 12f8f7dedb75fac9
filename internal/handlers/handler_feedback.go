package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

type feedbackHandler struct {
	feedbackService portssvc.FeedbackSvcFacade
}

func newFeedbackHandler(feedbackService portssvc.FeedbackSvcFacade) *feedbackHandler {
	return &feedbackHandler{feedbackService: feedbackService}
}

// createFeedback godoc
// @Summary Submit feedback
// @Description Posts a complaint or suggestion; it enters the queue in status NEW
// @Tags feedback
// @Accept json
// @Produce json
// @Param feedback body dto.CreateFeedbackRequest true "Feedback body"
// @Success 201 {object} dto.FeedbackResponse
// @Router /feedback [post]
func (h *feedbackHandler) createFeedback(c *gin.Context) {
	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeedbackResponse(feedback))
}

// getFeedback godoc
// @Summary Get a feedback item
// @Tags feedback
// @Produce json
// @Param feedbackID path string true "Feedback ID"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 404 {object} map[string]string "Feedback not found"
// @Router /feedback/{feedbackID} [get]
func (h *feedbackHandler) getFeedback(c *gin.Context) {
	feedback, err := h.feedbackService.GetFeedbackByID(c.Request.Context(), c.Param("feedbackID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !callerCanAccess(c, feedback.AccountID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedbackResponse(feedback))
}

func registerFeedbackRoutes(group *gin.RouterGroup, feedbackSvc portssvc.FeedbackSvcFacade) {
	h := newFeedbackHandler(feedbackSvc)

	feedback := group.Group("/feedback")
	{
		feedback.POST("", h.createFeedback)
		feedback.GET("/:feedbackID", h.getFeedback)
	}
}
