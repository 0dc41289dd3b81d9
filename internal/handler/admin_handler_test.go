package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/visitordesk/api/internal/entity"
	"github.com/visitordesk/api/internal/repository"
	"github.com/visitordesk/api/internal/service"
)

func adminHandlerWith(repo *stubVisitorsRepo) *AdminHandler {
	return NewAdminHandler(service.NewVisitorsService(repo, &stubStore{}, nil, nil))
}

func TestAdminHandler_List(t *testing.T) {
	now := time.Now()
	repo := &stubVisitorsRepo{
		listFunc: func(ctx context.Context) ([]entity.Visitor, error) {
			return []entity.Visitor{
				{ID: uuid.New(), PersonalPhoneNumber: "9876543210", CreatedAt: now},
				{ID: uuid.New(), PersonalPhoneNumber: "8765432109", CreatedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	h := adminHandlerWith(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/visitors", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if resp.Message != "Successfully retrieved all visitor data." {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	items, ok := resp.Data.([]any)
	if !ok {
		t.Fatalf("expected array payload, got %T", resp.Data)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 visitors, got %d", len(items))
	}
	first := items[0].(map[string]any)
	if first["personalPhoneNumber"] != "9876543210" {
		t.Fatalf("ordering not preserved: %v", first["personalPhoneNumber"])
	}
}

func TestAdminHandler_ListEmpty(t *testing.T) {
	h := adminHandlerWith(&stubVisitorsRepo{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/visitors", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := decodeResponse(t, rec)
	items, ok := resp.Data.([]any)
	if !ok {
		t.Fatalf("empty result must still be an array, got %T", resp.Data)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty array, got %d items", len(items))
	}
}

func TestAdminHandler_ListStorageFailure(t *testing.T) {
	repo := &stubVisitorsRepo{
		listFunc: func(ctx context.Context) ([]entity.Visitor, error) {
			return nil, errors.New("database gone")
		},
	}
	h := adminHandlerWith(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/visitors", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func updateContext(e *echo.Echo, id, body string, rec *httptest.ResponseRecorder) echo.Context {
	req := httptest.NewRequest(http.MethodPut, "/admin/visitors/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, rec)
	c.SetPath("/admin/visitors/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestAdminHandler_Update(t *testing.T) {
	id := uuid.New()
	repo := &stubVisitorsRepo{
		updateByIDFunc: func(ctx context.Context, gotID uuid.UUID, input repository.UpdateVisitorInput) (*entity.Visitor, error) {
			if gotID != id {
				t.Fatalf("unexpected id: %s", gotID)
			}
			return &entity.Visitor{
				ID:                  id,
				PersonalPhoneNumber: input.PersonalPhoneNumber,
				Name:                input.Name,
			}, nil
		},
	}
	h := adminHandlerWith(repo)

	e := echo.New()
	rec := httptest.NewRecorder()
	body := `{"personalPhoneNumber":"9876543210","name":"Asha Rao"}`

	if err := h.Update(updateContext(e, id.String(), body, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp.Message != "Visitor updated successfully!" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
	data := resp.Data.(map[string]any)
	if data["id"] != id.String() {
		t.Fatalf("update must keep the record id, got %v", data["id"])
	}
}

func TestAdminHandler_UpdateMalformedID(t *testing.T) {
	h := adminHandlerWith(&stubVisitorsRepo{})

	e := echo.New()
	rec := httptest.NewRecorder()
	if err := h.Update(updateContext(e, "not-a-uuid", `{}`, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_UpdateNotFound(t *testing.T) {
	h := adminHandlerWith(&stubVisitorsRepo{})

	e := echo.New()
	rec := httptest.NewRecorder()
	body := `{"personalPhoneNumber":"9876543210"}`
	if err := h.Update(updateContext(e, uuid.NewString(), body, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Visitor not found." {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestAdminHandler_UpdateInvalidPhone(t *testing.T) {
	h := adminHandlerWith(&stubVisitorsRepo{})

	e := echo.New()
	rec := httptest.NewRecorder()
	body := `{"personalPhoneNumber":"12345"}`
	if err := h.Update(updateContext(e, uuid.NewString(), body, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_UpdatePhoneConflict(t *testing.T) {
	repo := &stubVisitorsRepo{
		updateByIDFunc: func(ctx context.Context, id uuid.UUID, input repository.UpdateVisitorInput) (*entity.Visitor, error) {
			return nil, repository.ErrPhoneDuplicate
		},
	}
	h := adminHandlerWith(repo)

	e := echo.New()
	rec := httptest.NewRecorder()
	body := `{"personalPhoneNumber":"9876543210"}`
	if err := h.Update(updateContext(e, uuid.NewString(), body, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func deleteContext(e *echo.Echo, id string, rec *httptest.ResponseRecorder) echo.Context {
	req := httptest.NewRequest(http.MethodDelete, "/admin/visitors/"+id, nil)
	c := e.NewContext(req, rec)
	c.SetPath("/admin/visitors/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func TestAdminHandler_Delete(t *testing.T) {
	id := uuid.New()
	repo := &stubVisitorsRepo{
		deleteByIDFunc: func(ctx context.Context, gotID uuid.UUID) (*entity.Visitor, error) {
			if gotID != id {
				t.Fatalf("unexpected id: %s", gotID)
			}
			return &entity.Visitor{ID: id, PersonalPhoneNumber: "9876543210"}, nil
		},
	}
	h := adminHandlerWith(repo)

	e := echo.New()
	rec := httptest.NewRecorder()
	if err := h.Delete(deleteContext(e, id.String(), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Message != "Visitor deleted successfully!" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestAdminHandler_DeleteNotFound(t *testing.T) {
	h := adminHandlerWith(&stubVisitorsRepo{})

	e := echo.New()
	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		rec := httptest.NewRecorder()
		if err := h.Delete(deleteContext(e, id, rec)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %q, got %d", id, rec.Code)
		}
	}
}
