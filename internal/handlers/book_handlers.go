package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookmarkd/internal/services"
)

type BookHandler struct {
	svc services.LibraryService
}

type createBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	TotalPages    *int   `json:"total_pages"`
	PageProgress  *int   `json:"page_progress"`
	OpenLibraryID string `json:"open_library_id"`
	Genre         string `json:"genre"`
}

type updateBookProgressRequest struct {
	PageProgress *int `json:"page_progress"`
}

type updateBookRatingRequest struct {
	Rating *float64 `json:"rating"`
}

func (h *BookHandler) createBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	details, err := h.svc.AddBook(currentUserID(c), services.AddBookParams{
		Title:         req.Title,
		Author:        req.Author,
		TotalPages:    req.TotalPages,
		PageProgress:  req.PageProgress,
		OpenLibraryID: req.OpenLibraryID,
		Genre:         req.Genre,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

func (h *BookHandler) listBooks(c *gin.Context) {
	details, err := h.svc.ListBooks(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *BookHandler) deleteBook(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.RemoveBook(currentUserID(c), bookID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book removed from library"})
}

func (h *BookHandler) updateProgress(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req updateBookProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PageProgress == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_progress is required"})
		return
	}
	details, err := h.svc.UpdateProgress(currentUserID(c), bookID, *req.PageProgress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *BookHandler) updateRating(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req updateBookRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}
	details, err := h.svc.UpdateRating(currentUserID(c), bookID, *req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// parseIDParam reads the :id path segment as an unsigned integer, answering
// 400 itself when it does not parse.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
