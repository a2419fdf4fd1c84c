package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookmarkd/internal/services"
)

type ClubHandler struct {
	svc services.ClubService
}

type createClubRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createPostRequest struct {
	Body string `json:"body"`
}

type createCommentRequest struct {
	Body string `json:"body"`
}

func (h *ClubHandler) listClubs(c *gin.Context) {
	clubs, err := h.svc.ListClubs()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) listMyClubs(c *gin.Context) {
	clubs, err := h.svc.ListUserClubs(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clubs)
}

func (h *ClubHandler) createClub(c *gin.Context) {
	var req createClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	club, err := h.svc.CreateClub(currentUserID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, club)
}

func (h *ClubHandler) getClub(c *gin.Context) {
	club, err := h.svc.GetClub(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, club)
}

func (h *ClubHandler) joinClub(c *gin.Context) {
	joined, err := h.svc.JoinClub(currentUserID(c), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Joined club"
	if !joined {
		message = "Already a member"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *ClubHandler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	post, err := h.svc.CreatePost(currentUserID(c), c.Param("slug"), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *ClubHandler) feed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "0"))

	feed, err := h.svc.Feed(currentUserID(c), c.Param("slug"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *ClubHandler) createComment(c *gin.Context) {
	postID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	comment, err := h.svc.CreateComment(currentUserID(c), postID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
