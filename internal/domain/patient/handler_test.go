package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/receita/receita/pkg/pagination"
)

func TestCreateHandler(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))

	e := echo.New()
	body := `{"name":"Maria Silva","cpf":"12345678901","phone":"65999990000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var got Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name != "Maria Silva" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestCreateHandlerValidation(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(`{"name":"Maria"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestCreateHandlerDuplicateCPF(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))

	seed := &Patient{Name: "Maria Silva", CPF: "12345678901", Phone: "659"}
	if err := repo.Create(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	e := echo.New()
	body := `{"name":"Outra Pessoa","cpf":"12345678901","phone":"659"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestGetHandler(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))

	seed := &Patient{Name: "Maria Silva", CPF: "12345678901", Phone: "659"}
	if err := repo.Create(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(seed.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestGetHandlerNotFound(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestGetHandlerBadID(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestSearchHandler(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))

	seed := &Patient{Name: "Maria Silva", CPF: "12345678901", Phone: "659"}
	if err := repo.Create(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients?search=maria", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var page struct {
		Data  []*Patient `json:"data"`
		Total int        `json:"total"`
		Limit int        `json:"limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Errorf("expected 1 match, got %d of %d", len(page.Data), page.Total)
	}
	if page.Limit != pagination.DefaultLimit {
		t.Errorf("limit = %d, want the default %d", page.Limit, pagination.DefaultLimit)
	}
}

func TestSearchHandlerPaged(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))

	for _, name := range []string{"Maria Silva", "Maria Souza"} {
		seed := &Patient{Name: name, CPF: uuid.NewString()[:11], Phone: "659"}
		if err := repo.Create(context.Background(), seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients?search=maria&limit=1&offset=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var page struct {
		Data   []*Patient `json:"data"`
		Total  int        `json:"total"`
		Offset int        `json:"offset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 2 {
		t.Errorf("total = %d, want 2", page.Total)
	}
	if len(page.Data) != 1 || page.Data[0].Name != "Maria Souza" {
		t.Errorf("expected the second match only, got %v", page.Data)
	}
	if page.Offset != 1 {
		t.Errorf("offset = %d, want 1", page.Offset)
	}
}
