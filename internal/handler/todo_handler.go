package handler

import (
	"errors"
	"net/http"

	"focusflow/internal/middleware"
	"focusflow/internal/model"
	"focusflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TodoHandler struct {
	todos *service.TodoService
}

func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// TodoRequest is the payload for creating a todo
type TodoRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body" binding:"required"`
	Deadline string `json:"deadline"` // YYYY-MM-DD, empty for none
	Channel  string `json:"channel"`
}

// TodoUpdateRequest is a partial update; omitted fields are untouched
type TodoUpdateRequest struct {
	Title    *string  `json:"title"`
	Body     *string  `json:"body"`
	Deadline *string  `json:"deadline"`
	Score    *float64 `json:"score"`
}

// ScoreUpdateRequest is one entry of a bulk score write
type ScoreUpdateRequest struct {
	TodoID string  `json:"todo_id" binding:"required,uuid"`
	Score  float64 `json:"score"`
}

// BulkScoresRequest carries a bulk score update
type BulkScoresRequest struct {
	Updates []ScoreUpdateRequest `json:"updates" binding:"required,min=1,dive"`
}

// currentUserID pulls the authenticated user out of the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// respondError maps a use-case error onto an HTTP status.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "reasons": verr.Result.Errors})
	case errors.Is(err, service.ErrNotFoundOrDenied):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfComparison):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Create creates a new todo
// @Summary  Create a todo
// @Tags     Todos
// @Accept   json
// @Produce  json
// @Param    request body TodoRequest true "Todo data"
// @Success  201 {object} model.Todo
// @Security BearerAuth
// @Router   /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), userID, service.CreateTodoInput{
		Title:    req.Title,
		Body:     req.Body,
		Deadline: req.Deadline,
		Channel:  req.Channel,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// Get returns a single todo with its completion moment
// @Summary  Get a todo
// @Tags     Todos
// @Produce  json
// @Param    id path string true "Todo ID"
// @Success  200 {object} service.TodoDetail
// @Security BearerAuth
// @Router   /todos/{id} [get]
func (h *TodoHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo ID format"})
		return
	}

	detail, err := h.todos.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Validate checks a draft without persisting anything
// @Summary  Validate a todo draft
// @Tags     Todos
// @Accept   json
// @Produce  json
// @Param    request body TodoRequest true "Draft data"
// @Success  200 {object} validation.Result
// @Security BearerAuth
// @Router   /todos/validate [post]
func (h *TodoHandler) Validate(c *gin.Context) {
	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res := h.todos.Validate(service.CreateTodoInput{
		Title:    req.Title,
		Body:     req.Body,
		Deadline: req.Deadline,
	})
	c.JSON(http.StatusOK, res)
}

// Update merges fields into an existing todo
// @Summary  Update a todo
// @Tags     Todos
// @Accept   json
// @Produce  json
// @Param    id      path string            true "Todo ID"
// @Param    request body TodoUpdateRequest true "Fields to change"
// @Success  200 {object} model.Todo
// @Security BearerAuth
// @Router   /todos/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo ID format"})
		return
	}

	var req TodoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), userID, id, service.UpdateTodoInput{
		Title:    req.Title,
		Body:     req.Body,
		Deadline: req.Deadline,
		Score:    req.Score,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// Complete marks a todo as done
// @Summary  Complete a todo
// @Tags     Todos
// @Produce  json
// @Param    id path string true "Todo ID"
// @Success  200 {object} map[string]interface{}
// @Security BearerAuth
// @Router   /todos/{id}/complete [post]
func (h *TodoHandler) Complete(c *gin.Context) {
	h.setStatus(c, true)
}

// Reopen returns a completed todo to the open state
// @Summary  Reopen a todo
// @Tags     Todos
// @Produce  json
// @Param    id path string true "Todo ID"
// @Success  200 {object} map[string]interface{}
// @Security BearerAuth
// @Router   /todos/{id}/reopen [post]
func (h *TodoHandler) Reopen(c *gin.Context) {
	h.setStatus(c, false)
}

func (h *TodoHandler) setStatus(c *gin.Context, complete bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo ID format"})
		return
	}

	if complete {
		err = h.todos.Complete(c.Request.Context(), userID, id)
	} else {
		err = h.todos.Reopen(c.Request.Context(), userID, id)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	status := model.StatusOpen
	if complete {
		status = model.StatusCompleted
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// Delete removes a todo and its comparison/completion history
// @Summary  Delete a todo
// @Tags     Todos
// @Produce  json
// @Param    id path string true "Todo ID"
// @Success  200 {object} map[string]interface{}
// @Security BearerAuth
// @Router   /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo ID format"})
		return
	}

	if err := h.todos.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted"})
}

// BulkScores applies several score updates at once
// @Summary  Bulk-update scores
// @Tags     Todos
// @Accept   json
// @Produce  json
// @Param    request body BulkScoresRequest true "Score updates"
// @Success  200 {object} service.BulkOutcome
// @Security BearerAuth
// @Router   /todos/scores [post]
func (h *TodoHandler) BulkScores(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req BulkScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make([]model.ScoreUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		todoID, err := uuid.Parse(u.TodoID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo ID format"})
			return
		}
		updates = append(updates, model.ScoreUpdate{TodoID: todoID, Score: u.Score})
	}

	out, err := h.todos.BulkUpdateScores(c.Request.Context(), userID, updates)
	if err != nil && out == nil {
		respondError(c, err)
		return
	}
	if err != nil {
		// Partial failure: report the outcome with the failed count.
		c.JSON(http.StatusMultiStatus, gin.H{"error": err.Error(), "updated": out.Updated, "failed": out.Failed})
		return
	}
	c.JSON(http.StatusOK, out)
}
