package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/RusMail/document-dealer/internal/model"
)

func createDocumentBody(customerID, contractorID uuid.UUID) map[string]any {
	return map[string]any{
		"type":         "SHIPMENT",
		"customerId":   customerID.String(),
		"contractorId": contractorID.String(),
		"amount":       150000.50,
		"date":         "2024-01-01",
	}
}

func TestCreateDocument(t *testing.T) {
	db, router, dispatcher := setupTest(t)
	user, token := seedUser(t, db, "user@example.com", model.RoleUser)
	customer := seedContractor(t, db, "ООО Заказчик", "7701000001", user)
	contractor := seedContractor(t, db, "ООО Исполнитель", "7702000002", user)

	w := doRequest(t, router, "POST", "/api/documents", token, createDocumentBody(customer.ID, contractor.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Document model.Document `json:"document"`
	}
	decodeBody(t, w, &resp)
	if resp.Document.Status != model.DocumentStatusProcessing {
		t.Fatalf("status %q, want PROCESSING", resp.Document.Status)
	}
	if resp.Document.CreatedBy != user.ID {
		t.Fatalf("createdBy %s, want %s", resp.Document.CreatedBy, user.ID)
	}

	payload := dispatcher.lastPayload(t)
	if payload.DocumentID != resp.Document.ID.String() {
		t.Fatalf("payload documentId %q", payload.DocumentID)
	}
	if payload.TypeDoc != "Отгрузка" {
		t.Fatalf("type_doc %q", payload.TypeDoc)
	}
	if payload.Zakazchik != customer.FullName {
		t.Fatalf("zakazchik %q", payload.Zakazchik)
	}
	if payload.Ispolnitel != contractor.FullName {
		t.Fatalf("ispolnitel %q", payload.Ispolnitel)
	}
	if payload.ColontitulIspolnitel != "И.И. Иванов" {
		t.Fatalf("colontitul_ispolnitel %q", payload.ColontitulIspolnitel)
	}
	if payload.Date != "01.01.2024" {
		t.Fatalf("date %q", payload.Date)
	}
	if payload.SrokDogovora != "26.11.2024г." {
		t.Fatalf("srok_dogovora %q", payload.SrokDogovora)
	}
}

func TestCreateDocumentDispatchFailure(t *testing.T) {
	db, router, dispatcher := setupTest(t)
	user, token := seedUser(t, db, "user@example.com", model.RoleUser)
	customer := seedContractor(t, db, "ООО Заказчик", "7701000001", user)
	contractor := seedContractor(t, db, "ООО Исполнитель", "7702000002", user)
	dispatcher.err = errors.New("workflow unreachable")

	// запрос всё равно успешен, но документ помечается как FAILED
	w := doRequest(t, router, "POST", "/api/documents", token, createDocumentBody(customer.ID, contractor.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Document model.Document `json:"document"`
	}
	decodeBody(t, w, &resp)
	if resp.Document.Status != model.DocumentStatusFailed {
		t.Fatalf("status %q, want FAILED", resp.Document.Status)
	}
}

func TestCreateDocumentValidation(t *testing.T) {
	db, router, _ := setupTest(t)
	user, token := seedUser(t, db, "user@example.com", model.RoleUser)
	customer := seedContractor(t, db, "ООО Заказчик", "7701000001", user)
	contractor := seedContractor(t, db, "ООО Исполнитель", "7702000002", user)

	body := createDocumentBody(customer.ID, contractor.ID)
	body["type"] = "UNKNOWN"
	w := doRequest(t, router, "POST", "/api/documents", token, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad type status %d, want 400", w.Code)
	}

	body = createDocumentBody(customer.ID, contractor.ID)
	body["customerId"] = "not-a-uuid"
	w = doRequest(t, router, "POST", "/api/documents", token, body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad customerId status %d, want 400", w.Code)
	}

	body = createDocumentBody(uuid.New(), contractor.ID)
	w = doRequest(t, router, "POST", "/api/documents", token, body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown customer status %d, want 404", w.Code)
	}
}

func TestDocumentCallback(t *testing.T) {
	db, router, _ := setupTest(t)
	user, token := seedUser(t, db, "user@example.com", model.RoleUser)
	customer := seedContractor(t, db, "ООО Заказчик", "7701000001", user)
	contractor := seedContractor(t, db, "ООО Исполнитель", "7702000002", user)

	w := doRequest(t, router, "POST", "/api/documents", token, createDocumentBody(customer.ID, contractor.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Document model.Document `json:"document"`
	}
	decodeBody(t, w, &created)
	id := created.Document.ID.String()

	// колбэк приходит без токена
	w = doRequest(t, router, "POST", "/api/documents/webhook/"+id, "", map[string]string{
		"status":      "success",
		"documentUrl": "https://files.example.com/doc.pdf",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("callback status %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, "GET", "/api/documents/"+id, token, nil)
	var fetched struct {
		Document model.Document `json:"document"`
	}
	decodeBody(t, w, &fetched)
	if fetched.Document.Status != model.DocumentStatusCompleted {
		t.Fatalf("status %q, want COMPLETED", fetched.Document.Status)
	}
	if fetched.Document.DocumentURL != "https://files.example.com/doc.pdf" {
		t.Fatalf("documentUrl %q", fetched.Document.DocumentURL)
	}

	// повторный колбэк по завершённому документу отклоняется
	w = doRequest(t, router, "POST", "/api/documents/webhook/"+id, "", map[string]string{
		"status":      "success",
		"documentUrl": "https://files.example.com/other.pdf",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("repeat callback status %d, want 409", w.Code)
	}

	w = doRequest(t, router, "GET", "/api/documents/"+id+"/download", token, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("download status %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "https://files.example.com/doc.pdf" {
		t.Fatalf("location %q", loc)
	}
}

func TestDocumentCallbackFailure(t *testing.T) {
	db, router, _ := setupTest(t)
	user, token := seedUser(t, db, "user@example.com", model.RoleUser)
	customer := seedContractor(t, db, "ООО Заказчик", "7701000001", user)
	contractor := seedContractor(t, db, "ООО Исполнитель", "7702000002", user)

	w := doRequest(t, router, "POST", "/api/documents", token, createDocumentBody(customer.ID, contractor.ID))
	var created struct {
		Document model.Document `json:"document"`
	}
	decodeBody(t, w, &created)
	id := created.Document.ID.String()

	// любой статус кроме "success" считается ошибкой генерации
	w = doRequest(t, router, "POST", "/api/documents/webhook/"+id, "", map[string]string{
		"status": "error",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("callback status %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, "GET", "/api/documents/"+id, token, nil)
	var fetched struct {
		Document model.Document `json:"document"`
	}
	decodeBody(t, w, &fetched)
	if fetched.Document.Status != model.DocumentStatusFailed {
		t.Fatalf("status %q, want FAILED", fetched.Document.Status)
	}

	// документ без готового файла скачать нельзя
	w = doRequest(t, router, "GET", "/api/documents/"+id+"/download", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("download status %d, want 400", w.Code)
	}
}

func TestDocumentCallbackUnknownID(t *testing.T) {
	_, router, _ := setupTest(t)

	w := doRequest(t, router, "POST", "/api/documents/webhook/"+uuid.NewString(), "", map[string]string{
		"status": "success",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestDeleteDocumentOwnership(t *testing.T) {
	db, router, _ := setupTest(t)
	owner, ownerToken := seedUser(t, db, "owner@example.com", model.RoleUser)
	_, otherToken := seedUser(t, db, "other@example.com", model.RoleUser)
	customer := seedContractor(t, db, "ООО Заказчик", "7701000001", owner)
	contractor := seedContractor(t, db, "ООО Исполнитель", "7702000002", owner)

	w := doRequest(t, router, "POST", "/api/documents", ownerToken, createDocumentBody(customer.ID, contractor.ID))
	var created struct {
		Document model.Document `json:"document"`
	}
	decodeBody(t, w, &created)
	id := created.Document.ID.String()

	w = doRequest(t, router, "DELETE", "/api/documents/"+id, otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete status %d, want 403", w.Code)
	}

	w = doRequest(t, router, "DELETE", "/api/documents/"+id, ownerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("own delete status %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, "GET", "/api/documents/"+id, ownerToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", w.Code)
	}
}

func TestDocumentTypes(t *testing.T) {
	db, router, _ := setupTest(t)
	_, token := seedUser(t, db, "user@example.com", model.RoleUser)

	w := doRequest(t, router, "GET", "/api/documents/meta/types", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Types []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"types"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Types) != 2 {
		t.Fatalf("types %d, want 2", len(resp.Types))
	}
}

func TestListDocuments(t *testing.T) {
	db, router, _ := setupTest(t)
	user, token := seedUser(t, db, "user@example.com", model.RoleUser)
	customer := seedContractor(t, db, "ООО Заказчик", "7701000001", user)
	contractor := seedContractor(t, db, "ООО Исполнитель", "7702000002", user)

	for i := 0; i < 2; i++ {
		w := doRequest(t, router, "POST", "/api/documents", token, createDocumentBody(customer.ID, contractor.ID))
		if w.Code != http.StatusCreated {
			t.Fatalf("create status %d: %s", w.Code, w.Body.String())
		}
	}

	w := doRequest(t, router, "GET", "/api/documents", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Documents []model.Document `json:"documents"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Documents) != 2 {
		t.Fatalf("documents %d, want 2", len(resp.Documents))
	}
	if resp.Documents[0].Customer == nil || resp.Documents[0].Contractor == nil {
		t.Fatal("associations not preloaded")
	}
}

func TestHealth(t *testing.T) {
	_, router, _ := setupTest(t)

	w := doRequest(t, router, "GET", "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	decodeBody(t, w, &resp)
	if resp.Status != "OK" {
		t.Fatalf("status %q", resp.Status)
	}
}
