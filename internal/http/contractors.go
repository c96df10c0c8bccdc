package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RusMail/document-dealer/internal/http/middleware"
	"github.com/RusMail/document-dealer/internal/service"
)

type contractorRequest struct {
	ShortName            string `json:"shortName"`
	FullName             string `json:"fullName"`
	OGRN                 string `json:"ogrn"`
	INN                  string `json:"inn"`
	KPP                  string `json:"kpp"`
	OKPO                 string `json:"okpo"`
	OKVED                string `json:"okved"`
	LegalAddress         string `json:"legalAddress"`
	ActualAddress        string `json:"actualAddress"`
	CheckingAccount      string `json:"checkingAccount"`
	BankName             string `json:"bankName"`
	CorrespondentAccount string `json:"correspondentAccount"`
	BIK                  string `json:"bik"`
	Director             string `json:"director"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
}

func (r contractorRequest) toInput() service.ContractorInput {
	return service.ContractorInput{
		ShortName:            r.ShortName,
		FullName:             r.FullName,
		OGRN:                 r.OGRN,
		INN:                  r.INN,
		KPP:                  r.KPP,
		OKPO:                 r.OKPO,
		OKVED:                r.OKVED,
		LegalAddress:         r.LegalAddress,
		ActualAddress:        r.ActualAddress,
		CheckingAccount:      r.CheckingAccount,
		BankName:             r.BankName,
		CorrespondentAccount: r.CorrespondentAccount,
		BIK:                  r.BIK,
		Director:             r.Director,
		Phone:                r.Phone,
		Email:                r.Email,
	}
}

func (h *Handler) listContractors(c *gin.Context) {
	contractors, err := h.contractors.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contractors": contractors})
}

func (h *Handler) getContractor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	contractor, err := h.contractors.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contractor": contractor})
}

func (h *Handler) createContractor(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req contractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractor, err := h.contractors.Create(c.Request.Context(), req.toInput(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contractor": contractor})
}

func (h *Handler) updateContractor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req contractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractor, err := h.contractors.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contractor": contractor})
}

func (h *Handler) deleteContractor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.contractors.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contractor deleted successfully"})
}

func (h *Handler) exportContractors(c *gin.Context) {
	result, err := h.contractors.Export(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	const contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) contractorCard(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.contractors.Card(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}
