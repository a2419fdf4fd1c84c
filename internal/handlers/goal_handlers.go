package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmarkd/internal/services"
)

type GoalHandler struct {
	svc services.GoalService
}

// createGoalRequest leaves amount untyped: the service coerces numbers and
// numeric strings and rejects everything else with a field-specific message.
type createGoalRequest struct {
	Amount   any    `json:"amount"`
	Type     string `json:"type"`
	Duration string `json:"duration"`
}

type updateGoalProgressRequest struct {
	Progress *float64 `json:"progress"`
}

func (h *GoalHandler) createGoal(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	goal, err := h.svc.CreateGoal(currentUserID(c), req.Amount, req.Type, req.Duration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Goal created successfully",
		"goal":    goal,
	})
}

func (h *GoalHandler) listGoals(c *gin.Context) {
	goals, err := h.svc.ListGoals(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"goals":       goals,
		"total_count": len(goals),
	})
}

func (h *GoalHandler) deleteGoal(c *gin.Context) {
	goalID, ok := parseIDParam(c)
	if !ok {
		return
	}
	goal, err := h.svc.DeleteGoal(currentUserID(c), goalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Goal deleted successfully",
		"deleted_goal": goal,
	})
}

func (h *GoalHandler) updateProgress(c *gin.Context) {
	goalID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req updateGoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "progress is required"})
		return
	}
	goal, err := h.svc.UpdateProgress(currentUserID(c), goalID, *req.Progress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
