package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookmarkd/internal/auth"
	"bookmarkd/internal/models"
	"bookmarkd/internal/services"
)

type AuthHandler struct {
	svc services.AuthService
	jwt *auth.JWTManager
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) me(c *gin.Context) {
	user, err := h.svc.GetUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := h.jwt.GenerateToken(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{
		"user":  user,
		"token": token,
	})
}
