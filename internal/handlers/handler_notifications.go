package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(notificationService portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

// listNotifications godoc
// @Summary List the caller's notifications
// @Description Returns the caller's inbox, newest first
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListNotificationsResponse
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), accountID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListNotificationsResponse(notifications))
}

// markRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param notificationID path string true "Notification ID"
// @Success 204 "Marked"
// @Failure 404 {object} map[string]string "Notification not found"
// @Router /notifications/{notificationID}/read [put]
func (h *notificationHandler) markRead(c *gin.Context) {
	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("notificationID"), accountID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func registerNotificationRoutes(group *gin.RouterGroup, notificationSvc portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationSvc)

	notifications := group.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.PUT("/:notificationID/read", h.markRead)
	}
}
