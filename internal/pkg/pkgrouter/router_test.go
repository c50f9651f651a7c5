package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Prototype-Group/sidekick/internal/pkg/pkgerror"
)

type fixedID struct{}

func (fixedID) Generate() string { return "cid-fixed" }

func TestRouterEncodesPayloadVerbatim(t *testing.T) {
	router := NewRouter(fixedID{})
	router.POST("/things", func(ctx context.Context, r *http.Request) (any, error) {
		return map[string]string{"thingId": "abc"}, nil
	})

	req := httptest.NewRequest(http.MethodPost, "/things", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["thingId"] != "abc" {
		t.Fatalf("body = %v, want thingId=abc", body)
	}
	if got := rec.Header().Get(HeaderCorrelationID); got != "cid-fixed" {
		t.Fatalf("correlation header = %q, want cid-fixed", got)
	}
}

func TestRouterNilPayloadIsNoContent(t *testing.T) {
	router := NewRouter(fixedID{})
	router.POST("/done", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, nil
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/done", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestRouterMapsStructuredErrors(t *testing.T) {
	router := NewRouter(fixedID{})
	router.GET("/missing", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, pkgerror.NewBusiness("wrapper not found", pkgerror.CodeNotFound)
	})
	router.GET("/broken", func(ctx context.Context, r *http.Request) (any, error) {
		return nil, errors.New("raw")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/broken", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"outer", "inner", "handler"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
