package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wargaku/rtrw_portal_app/internal/core/domain"
	portssvc "github.com/wargaku/rtrw_portal_app/internal/core/ports/services"
	"github.com/wargaku/rtrw_portal_app/internal/dto"
	"github.com/wargaku/rtrw_portal_app/internal/middleware"
)

// taskHandler handles the administrator task queue and decisions.
type taskHandler struct {
	taskService       portssvc.TaskSvcFacade
	transitionService portssvc.TransitionSvcFacade
}

func newTaskHandler(taskService portssvc.TaskSvcFacade, transitionService portssvc.TransitionSvcFacade) *taskHandler {
	return &taskHandler{taskService: taskService, transitionService: transitionService}
}

// listTasks godoc
// @Summary List pending administrator tasks
// @Description Returns the unified task queue, newest first, with per-kind badge counts
// @Tags tasks
// @Produce json
// @Param kind query string false "Task kind filter" Enums(ALL, ACCOUNT_VERIFICATION, CHANGE_REQUEST, PAYMENT, FEEDBACK)
// @Success 200 {object} dto.ListTasksResponse
// @Failure 400 {object} map[string]string "Unknown task kind"
// @Router /tasks [get]
func (h *taskHandler) listTasks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTasksParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	kind, filtered, err := domain.ParseTaskKind(params.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var filter *domain.TaskKind
	if filtered {
		filter = &kind
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list tasks", "error", err.Error())
		respondError(c, err)
		return
	}
	counts, err := h.taskService.CountTasksByKind(c.Request.Context())
	if err != nil {
		logger.Error("Failed to count tasks", "error", err.Error())
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTasksResponse(tasks, counts))
}

// decide applies an approve/reject/start decision on one task.
func (h *taskHandler) decide(c *gin.Context, decision domain.Decision) {
	kind, filtered, err := domain.ParseTaskKind(c.Param("kind"))
	if err != nil || !filtered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown task kind"})
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	outcome, err := h.transitionService.Apply(c.Request.Context(), kind, c.Param("id"), decision, req.Note, actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransitionOutcomeResponse(outcome))
}

// approveTask godoc
// @Summary Approve a pending task
// @Description Approves the task; for feedback this resolves the item
// @Tags tasks
// @Accept json
// @Produce json
// @Param kind path string true "Task kind"
// @Param id path string true "Source record ID"
// @Param decision body dto.TransitionRequest false "Optional administrator note"
// @Success 200 {object} dto.TransitionOutcomeResponse
// @Failure 404 {object} map[string]string "Task not found"
// @Failure 409 {object} map[string]string "Task was already decided"
// @Router /tasks/{kind}/{id}/approve [post]
func (h *taskHandler) approveTask(c *gin.Context) {
	h.decide(c, domain.DecisionApprove)
}

// rejectTask godoc
// @Summary Reject a pending task
// @Description Rejects the task; account verifications require a reason note
// @Tags tasks
// @Accept json
// @Produce json
// @Param kind path string true "Task kind"
// @Param id path string true "Source record ID"
// @Param decision body dto.TransitionRequest true "Administrator note"
// @Success 200 {object} dto.TransitionOutcomeResponse
// @Failure 400 {object} map[string]string "Missing rejection reason"
// @Failure 409 {object} map[string]string "Task was already decided"
// @Router /tasks/{kind}/{id}/reject [post]
func (h *taskHandler) rejectTask(c *gin.Context) {
	h.decide(c, domain.DecisionReject)
}

// startTask moves a feedback item NEW -> IN_PROGRESS; illegal for other kinds.
func (h *taskHandler) startTask(c *gin.Context) {
	h.decide(c, domain.DecisionStartProgress)
}

// autoApproveEligible godoc
// @Summary Auto-approve eligible account verifications
// @Description Applies the auto-approval policy and approves each eligible account independently
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.AutoApproveResponse
// @Router /accounts/auto-approve-eligible [post]
func (h *taskHandler) autoApproveEligible(c *gin.Context) {
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	results, err := h.taskService.AutoApproveEligible(c.Request.Context(), actorUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AutoApproveResponse{Results: results})
}

// registerTaskRoutes registers the administrator queue routes.
func registerTaskRoutes(group *gin.RouterGroup, taskSvc portssvc.TaskSvcFacade, transitionSvc portssvc.TransitionSvcFacade) {
	h := newTaskHandler(taskSvc, transitionSvc)

	tasks := group.Group("/tasks", middleware.RequireRole(middleware.RoleAdmin))
	{
		tasks.GET("", h.listTasks)
		tasks.POST("/:kind/:id/approve", h.approveTask)
		tasks.POST("/:kind/:id/reject", h.rejectTask)
		tasks.POST("/:kind/:id/start", h.startTask)
	}

	accounts := group.Group("/accounts", middleware.RequireRole(middleware.RoleAdmin))
	{
		accounts.POST("/auto-approve-eligible", h.autoApproveEligible)
	}
}
