package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wheresmymoney/internal/pagination"
	"wheresmymoney/internal/services"
)

// LetterHandler handles journal letter requests.
type LetterHandler struct {
	letterService services.LetterServicer
	auditService  services.AuditServicer
}

// NewLetterHandler creates a new LetterHandler.
func NewLetterHandler(letterService services.LetterServicer, auditService services.AuditServicer) *LetterHandler {
	return &LetterHandler{letterService: letterService, auditService: auditService}
}

// CreateLetterRequest represents the request payload for writing a letter.
type CreateLetterRequest struct {
	Date string `json:"date" binding:"omitempty,date_only" example:"2026-10-19"`
	Body string `json:"body" binding:"required"`
	Tags string `json:"tags" binding:"max=200"`
}

// UpdateLetterRequest represents the request payload for updating a letter.
type UpdateLetterRequest struct {
	Date *string `json:"date" binding:"omitempty,date_only"`
	Body *string `json:"body" binding:"omitempty,min=1"`
	Tags *string `json:"tags" binding:"omitempty,max=200"`
}

// CreateLetter handles writing a new letter.
// @Summary     Create a letter
// @Description Write a dated journal letter. A missing date means today.
// @Tags        letters
// @Accept      json
// @Produce     json
// @Param       request body CreateLetterRequest true "Letter"
// @Success     201 {object} models.Letter "Letter created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /letters [post]
func (h *LetterHandler) CreateLetter(c *gin.Context) {
	var req CreateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	date, err := parseDate(req.Date, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	letter, err := h.letterService.CreateLetter(date, req.Body, req.Tags)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_LETTER", "letter", letter.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, gin.H{"letter": letter})
}

// GetLetters lists letters, newest first.
// @Summary     Get letters
// @Description Get a paginated list of letters ordered by date descending
// @Tags        letters
// @Produce     json
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Letter] "Paginated letters"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /letters [get]
func (h *LetterHandler) GetLetters(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.letterService.GetLetters(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLetterByID returns a single letter.
// @Summary     Get letter by ID
// @Tags        letters
// @Produce     json
// @Param       id path string true "Letter ID"
// @Success     200 {object} models.Letter "Letter"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Letter not found"
// @Router      /letters/{id} [get]
func (h *LetterHandler) GetLetterByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	letter, err := h.letterService.GetLetterByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"letter": letter})
}

// UpdateLetter changes the given fields of a letter.
// @Summary     Update letter
// @Tags        letters
// @Accept      json
// @Produce     json
// @Param       id      path string              true "Letter ID"
// @Param       request body UpdateLetterRequest true "Fields to change"
// @Success     200 {object} models.Letter "Updated letter"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Letter not found"
// @Router      /letters/{id} [put]
func (h *LetterHandler) UpdateLetter(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	update := services.LetterUpdate{Body: req.Body, Tags: req.Tags}
	if req.Date != nil {
		if update.Date, err = parseDate(*req.Date, "date"); err != nil {
			respondWithError(c, err)
			return
		}
	}

	letter, err := h.letterService.UpdateLetter(id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_LETTER", "letter", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"letter": letter})
}

// DeleteLetter deletes a letter.
// @Summary     Delete letter
// @Tags        letters
// @Produce     json
// @Param       id path string true "Letter ID"
// @Success     200 {object} MessageResponse "Letter deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Letter not found"
// @Router      /letters/{id} [delete]
func (h *LetterHandler) DeleteLetter(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.letterService.DeleteLetter(id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_LETTER", "letter", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Letter deleted successfully"})
}
