package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mokshamaa/internal/services"
)

// handleCreateInquiry accepts a public form submission.
// POST /inquiries
func (s *Server) handleCreateInquiry(c *gin.Context) {
	var in services.CreateInquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	inquiry, err := s.inquiry.Create(c.Request.Context(), &in)
	if err != nil {
		s.writeError(c, err, "Failed to submit inquiry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"inquiry": inquiry,
		"message": "Inquiry submitted successfully",
	})
}

// handleListInquiries returns a filtered page, newest first.
// GET /inquiries?status=&category=&priority=&limit=&offset=
func (s *Server) handleListInquiries(c *gin.Context) {
	params := services.ListInquiriesParams{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Limit:    intQuery(c, "limit", 50),
		Offset:   intQuery(c, "offset", 0),
	}

	inquiries, total, err := s.inquiry.List(c.Request.Context(), params)
	if err != nil {
		s.writeError(c, err, "Failed to fetch inquiries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inquiries": inquiries,
		"total":     total,
		"limit":     params.Limit,
		"offset":    params.Offset,
	})
}

// handleGetInquiry returns a single inquiry.
// GET /inquiries/:id
func (s *Server) handleGetInquiry(c *gin.Context) {
	inquiry, err := s.inquiry.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err, "Failed to fetch inquiry")
		return
	}

	c.JSON(http.StatusOK, gin.H{"inquiry": inquiry})
}

// handleUpdateInquiry applies an allow-listed merge-patch.
// PATCH /inquiries/:id
func (s *Server) handleUpdateInquiry(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	inquiry, err := s.inquiry.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		s.writeError(c, err, "Failed to update inquiry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"inquiry": inquiry,
		"message": "Inquiry updated successfully",
	})
}

// writeError maps service errors onto the JSON error envelope. Client-caused
// failures keep their message; store failures are reported generically.
func (s *Server) writeError(c *gin.Context, err error, persistenceMsg string) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case services.IsNoOp(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case services.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistenceMsg})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
