package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pverissimo/loja-admin-api/api/middleware"
	"github.com/pverissimo/loja-admin-api/internal/stores"
	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
)

type stubStoreService struct {
	stores.Service
	created *stores.StoreDTO
	err     error
}

func (s *stubStoreService) Create(ctx context.Context, userID uuid.UUID, input stores.UpsertStoreInput) (*stores.StoreDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &stores.StoreDTO{ID: uuid.New(), Name: input.Name, UserID: userID}
	return s.created, nil
}

func (s *stubStoreService) List(ctx context.Context, userID uuid.UUID) ([]stores.StoreDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []stores.StoreDTO{}, nil
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	return r.WithContext(middleware.WithUserID(r.Context(), userID.String()))
}

func withRouteParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestStoreCreateReturnsCreated(t *testing.T) {
	svc := &stubStoreService{}
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/v1/stores", `{"name":"Loja Central"}`, uuid.New())

	StoreCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data stores.StoreDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Name != "Loja Central" {
		t.Fatalf("unexpected store name %q", envelope.Data.Name)
	}
}

func TestStoreCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubStoreService{}
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/v1/stores", `{"name":"Loja","owner":"someone"}`, uuid.New())

	StoreCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStoreListRequiresUserContext(t *testing.T) {
	svc := &stubStoreService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)

	StoreList(svc, nil)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestStoreCreatePropagatesQuotaError(t *testing.T) {
	svc := &stubStoreService{err: pkgerrors.New(pkgerrors.CodeForbidden, "cannot own more than 10 stores")}
	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/v1/stores", `{"name":"Loja"}`, uuid.New())

	StoreCreate(svc, nil)(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
