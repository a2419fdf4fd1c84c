package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmarkd/internal/services"
)

type RecommendationHandler struct {
	svc services.RecommendationService
}

func (h *RecommendationHandler) recommend(c *gin.Context) {
	var survey services.Survey
	if err := c.ShouldBindJSON(&survey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	required := []struct {
		field string
		value string
	}{
		{"genre", survey.Genre},
		{"length", survey.Length},
		{"series", survey.Series},
		{"mood", survey.Mood},
	}
	for _, r := range required {
		if r.value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": r.field + " is required"})
			return
		}
	}

	recommendations := h.svc.Recommend(c.Request.Context(), survey)
	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"survey":          survey,
	})
}
