package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

type changeRequestHandler struct {
	changeRequestService portssvc.ChangeRequestSvcFacade
}

func newChangeRequestHandler(changeRequestService portssvc.ChangeRequestSvcFacade) *changeRequestHandler {
	return &changeRequestHandler{changeRequestService: changeRequestService}
}

// createChangeRequest godoc
// @Summary Request a change to one profile field
// @Description The field name must be in the editable catalog; the current value is snapshotted as oldValue
// @Tags change-requests
// @Accept json
// @Produce json
// @Param request body dto.CreateChangeRequestRequest true "Requested change"
// @Success 201 {object} dto.ChangeRequestResponse
// @Failure 422 {object} map[string]string "Field not in the editable catalog"
// @Router /change-requests [post]
func (h *changeRequestHandler) createChangeRequest(c *gin.Context) {
	accountID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateChangeRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	changeRequest, err := h.changeRequestService.CreateChangeRequest(c.Request.Context(), accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChangeRequestResponse(changeRequest))
}

// getChangeRequest godoc
// @Summary Get a change request
// @Tags change-requests
// @Produce json
// @Param changeRequestID path string true "Change request ID"
// @Success 200 {object} dto.ChangeRequestResponse
// @Failure 404 {object} map[string]string "Change request not found"
// @Router /change-requests/{changeRequestID} [get]
func (h *changeRequestHandler) getChangeRequest(c *gin.Context) {
	changeRequest, err := h.changeRequestService.GetChangeRequestByID(c.Request.Context(), c.Param("changeRequestID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !callerCanAccess(c, changeRequest.AccountID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.ToChangeRequestResponse(changeRequest))
}

func registerChangeRequestRoutes(group *gin.RouterGroup, changeRequestSvc portssvc.ChangeRequestSvcFacade) {
	h := newChangeRequestHandler(changeRequestSvc)

	requests := group.Group("/change-requests")
	{
		requests.POST("", h.createChangeRequest)
		requests.GET("/:changeRequestID", h.getChangeRequest)
	}
}
