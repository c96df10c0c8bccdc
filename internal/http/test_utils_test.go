package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/RusMail/document-dealer/internal/auth"
	"github.com/RusMail/document-dealer/internal/excel"
	"github.com/RusMail/document-dealer/internal/http/middleware"
	"github.com/RusMail/document-dealer/internal/logger"
	"github.com/RusMail/document-dealer/internal/model"
	"github.com/RusMail/document-dealer/internal/pdf"
	"github.com/RusMail/document-dealer/internal/render"
	"github.com/RusMail/document-dealer/internal/repository"
	"github.com/RusMail/document-dealer/internal/service"
)

const testSecret = "test-secret"

// stubDispatcher подменяет внешний workflow в тестах.
type stubDispatcher struct {
	mu       sync.Mutex
	err      error
	payloads []render.Payload
}

func (d *stubDispatcher) Dispatch(_ context.Context, payload render.Payload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.payloads = append(d.payloads, payload)
	return nil
}

func (d *stubDispatcher) lastPayload(t *testing.T) render.Payload {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.payloads) == 0 {
		t.Fatal("no payloads dispatched")
	}
	return d.payloads[len(d.payloads)-1]
}

// setupTest создаёт in-memory БД и маршруты для тестов.
func setupTest(t *testing.T) (*gorm.DB, *gin.Engine, *stubDispatcher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Contractor{},
		&model.Document{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	contractorRepo := repository.NewContractorRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	cardGenerator, err := pdf.NewGenerator()
	if err != nil {
		t.Fatalf("pdf generator: %v", err)
	}
	dispatcher := &stubDispatcher{}
	log := logger.New("test")

	authService := service.NewAuthService(userRepo, auth.NewIssuer(testSecret))
	contractorService := service.NewContractorService(contractorRepo, excel.NewGenerator(), cardGenerator)
	documentService := service.NewDocumentService(documentRepo, contractorRepo, dispatcher, log)

	handler := NewHandler(authService, contractorService, documentService, db, log)
	authMiddleware := middleware.Auth(auth.NewParser(testSecret), userRepo)
	router := NewRouter(handler, authMiddleware, middleware.AdminOnly(), "test")

	return db, router, dispatcher
}

// seedUser создаёт пользователя с паролем "pass" и возвращает его вместе с токеном.
func seedUser(t *testing.T, db *gorm.DB, email string, role model.Role) (*model.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := model.User{
		Email:    email,
		Name:     "Test User",
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := auth.NewIssuer(testSecret).Issue(&user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &user, token
}

func seedContractor(t *testing.T, db *gorm.DB, shortName, inn string, createdBy *model.User) *model.Contractor {
	t.Helper()

	contractor := model.Contractor{
		ShortName:    shortName,
		FullName:     "ООО \"" + shortName + "\"",
		OGRN:         "1027700000000",
		INN:          inn,
		LegalAddress: "г. Москва, ул. Тестовая, д. 1",
		Director:     "Иванов Иван Иванович",
		CreatedBy:    createdBy.ID,
	}
	if err := db.Create(&contractor).Error; err != nil {
		t.Fatalf("create contractor: %v", err)
	}
	return &contractor
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body: %v (%s)", err, w.Body.String())
	}
}
