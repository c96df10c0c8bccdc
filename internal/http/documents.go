package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RusMail/document-dealer/internal/http/middleware"
	"github.com/RusMail/document-dealer/internal/model"
	"github.com/RusMail/document-dealer/internal/service"
)

type createDocumentRequest struct {
	Type         string  `json:"type"`
	CustomerID   string  `json:"customerId"`
	ContractorID string  `json:"contractorId"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
}

func (h *Handler) listDocuments(c *gin.Context) {
	documents, err := h.documents.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": documents})
}

func (h *Handler) getDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	document, err := h.documents.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": document})
}

func (h *Handler) createDocument(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, err := parseUUIDField(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customerId"})
		return
	}
	contractorID, err := parseUUIDField(req.ContractorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contractorId"})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	document, err := h.documents.Create(c.Request.Context(), service.CreateDocumentInput{
		Type:         model.DocumentType(req.Type),
		CustomerID:   customerID,
		ContractorID: contractorID,
		Amount:       req.Amount,
		Date:         date,
		Principal:    principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": document})
}

func (h *Handler) documentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"types": h.documents.Types()})
}

type documentCallbackRequest struct {
	DocumentURL string `json:"documentUrl"`
	Status      string `json:"status"`
}

func (h *Handler) documentCallback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	var req documentCallbackRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	err = h.documents.HandleCallback(c.Request.Context(), id, service.CallbackInput{
		Status:      req.Status,
		DocumentURL: req.DocumentURL,
		RawBody:     string(raw),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document status updated successfully"})
}

func (h *Handler) downloadDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	url, err := h.documents.Download(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (h *Handler) deleteDocument(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.documents.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
