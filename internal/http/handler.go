package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/RusMail/document-dealer/internal/service"
)

type Handler struct {
	auth        *service.AuthService
	contractors *service.ContractorService
	documents   *service.DocumentService
	db          *gorm.DB
	log         zerolog.Logger
}

func NewHandler(
	auth *service.AuthService,
	contractors *service.ContractorService,
	documents *service.DocumentService,
	db *gorm.DB,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:        auth,
		contractors: contractors,
		documents:   documents,
		db:          db,
		log:         log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware, adminMiddleware gin.HandlerFunc) {
	api := router.Group("/api")
	api.GET("/health", h.health)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.login)
	authGroup.POST("/create-admin", h.createAdmin)

	authProtected := authGroup.Group("")
	authProtected.Use(authMiddleware)
	authProtected.GET("/me", h.me)
	authProtected.PUT("/profile", h.updateProfile)
	authProtected.PUT("/password", h.changePassword)

	authAdmin := authProtected.Group("")
	authAdmin.Use(adminMiddleware)
	authAdmin.POST("/register", h.register)
	authAdmin.GET("/users", h.listUsers)
	authAdmin.PUT("/users/:id", h.updateUser)
	authAdmin.DELETE("/users/:id", h.deleteUser)

	contractors := api.Group("/contractors")
	contractors.Use(authMiddleware)
	contractors.GET("", h.listContractors)
	contractors.GET("/export", h.exportContractors)
	contractors.GET("/:id", h.getContractor)
	contractors.GET("/:id/card", h.contractorCard)
	contractors.POST("", h.createContractor)
	contractors.PUT("/:id", adminMiddleware, h.updateContractor)
	contractors.DELETE("/:id", h.deleteContractor)

	documents := api.Group("/documents")
	// Колбэк внешнего workflow приходит без аутентификации.
	documents.POST("/webhook/:id", h.documentCallback)

	documentsProtected := documents.Group("")
	documentsProtected.Use(authMiddleware)
	documentsProtected.GET("", h.listDocuments)
	documentsProtected.GET("/meta/types", h.documentTypes)
	documentsProtected.GET("/:id", h.getDocument)
	documentsProtected.GET("/:id/download", h.downloadDocument)
	documentsProtected.POST("", h.createDocument)
	documentsProtected.DELETE("/:id", h.deleteDocument)
}

func (h *Handler) health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "db error"})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "db down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseUUIDField(raw string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(raw))
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
