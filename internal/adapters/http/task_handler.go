package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/lite/internal/infrastructure/logger"
	"github.com/taskmaster/lite/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService ports.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask godoc
// @Summary Create a task
// @Description Store a task. An existing task with the same id is replaced.
// @Tags tasks
// @Accept json
// @Param request body ports.TaskRequest true "Task"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Router /task [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	req, err := h.bindTask(c)
	if err != nil {
		return err
	}

	if err := h.taskService.CreateTask(c.Request().Context(), req); err != nil {
		h.logger.Errorw("Create task failed", "error", err, "task_id", *req.ID)
		return mapError(err)
	}

	return c.NoContent(http.StatusOK)
}

// ListTasks godoc
// @Summary List tasks
// @Description Return every task in no particular order
// @Tags tasks
// @Produce json
// @Success 200 {array} entities.Task
// @Router /task [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err)
		return mapError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// UpdateTask godoc
// @Summary Replace a task
// @Description Replace the task with the same id, inserting it when absent
// @Tags tasks
// @Accept json
// @Param request body ports.TaskRequest true "Task"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Router /task [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	req, err := h.bindTask(c)
	if err != nil {
		return err
	}

	if err := h.taskService.UpdateTask(c.Request().Context(), req); err != nil {
		h.logger.Errorw("Update task failed", "error", err, "task_id", *req.ID)
		return mapError(err)
	}

	return c.NoContent(http.StatusOK)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /task/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Remove the task. Deleting an absent id succeeds.
// @Tags tasks
// @Param id path int true "Task ID"
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Router /task/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete task failed", "error", err, "task_id", id)
		return mapError(err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *TaskHandler) bindTask(c echo.Context) (ports.TaskRequest, error) {
	var req ports.TaskRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return req, nil
}
