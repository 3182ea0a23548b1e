package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bimbingan_service/internal/ctxdata"
	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
)

// ── helpers ─────────────────────────────────────────────────────────

func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withPrincipal(r *http.Request, p domain.Principal) *http.Request {
	return r.WithContext(ctxdata.WithPrincipal(r.Context(), p))
}

type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	versions    map[string]int64
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte), versions: make(map[string]int64)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	return data, ok
}

func (c *memCache) Version(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[key], nil
}

func (c *memCache) SetIfVersion(_ context.Context, key string, data []byte, _ time.Duration, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[key] != version {
		return
	}
	c.data[key] = data
}

func (c *memCache) Invalidate(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
		c.versions[key]++
		c.invalidated = append(c.invalidated, key)
	}
}

type echoRequest struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type echoResponse struct {
	Greeting string `json:"greeting"`
}

var caller = domain.Principal{ID: uuid.New(), Role: domain.RoleStudent, Status: domain.UserStatusActive}

// ── mapErr ──────────────────────────────────────────────────────────

func TestMapErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"BadRequest", ErrBadRequest, http.StatusBadRequest},
		{"InvalidInput", fmt.Errorf("title: %w", errdefs.ErrInvalidInput), http.StatusBadRequest},
		{"NotPDF", domain.ErrNotPDF, http.StatusBadRequest},
		{"Unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"Forbidden", errdefs.ErrForbidden, http.StatusForbidden},
		{"NotFound", errdefs.ErrNotFound, http.StatusNotFound},
		{"AlreadyReviewed", domain.ErrAlreadyReviewed, http.StatusConflict},
		{"BodyTooLarge", fmt.Errorf("%w: %w", ErrBadRequest, &http.MaxBytesError{Limit: 10}), http.StatusRequestEntityTooLarge},
		{"Internal", errdefs.Internal(errors.New("db down")), http.StatusInternalServerError},
		{"UnknownError", errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mapErr(tc.err))
		})
	}
}

// ── writeErrorJSON ──────────────────────────────────────────────────

func TestWriteErrorJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeErrorJSON(w, http.StatusBadRequest, "test error")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "test error", body["error"])
}

// ── parseIDParam ────────────────────────────────────────────────────

func TestParseIDParam(t *testing.T) {
	id := uuid.New()

	t.Run("Valid", func(t *testing.T) {
		r := withChiParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id.String())
		got, err := parseIDParam(r, "id")
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("Missing", func(t *testing.T) {
		r := withChiParam(httptest.NewRequest(http.MethodGet, "/", nil), "other", "x")
		_, err := parseIDParam(r, "id")
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("Malformed", func(t *testing.T) {
		r := withChiParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "not-a-uuid")
		_, err := parseIDParam(r, "id")
		assert.ErrorIs(t, err, ErrBadRequest)
	})
}

// ── Handle ──────────────────────────────────────────────────────────

func TestHandle(t *testing.T) {
	t.Run("NilMethodReturnsError", func(t *testing.T) {
		_, err := Handle[echoRequest, echoResponse](nil, nil, false, http.StatusOK)
		assert.ErrorIs(t, err, ErrNilMethod)
	})

	t.Run("Success", func(t *testing.T) {
		handler, err := Handle[echoRequest, echoResponse](
			func(_ context.Context, p domain.Principal, req *echoRequest) (echoResponse, error) {
				assert.Equal(t, caller.ID, p.ID)
				return echoResponse{Greeting: "halo " + req.Name + " " + req.ID}, nil
			},
			func(_ context.Context, r *http.Request, req *echoRequest) error {
				req.ID = chi.URLParam(r, "id")
				return nil
			},
			true, http.StatusCreated,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/echo/42", strings.NewReader(`{"name":"budi"}`))
		r = withPrincipal(withChiParam(r, "id", "42"), caller)

		handler(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"greeting":"halo budi 42"}`, w.Body.String())
	})

	t.Run("NoPrincipal", func(t *testing.T) {
		handler, err := Handle[echoRequest, echoResponse](
			func(context.Context, domain.Principal, *echoRequest) (echoResponse, error) {
				t.Fatal("method must not be called")
				return echoResponse{}, nil
			},
			nil, false, http.StatusOK,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest(http.MethodGet, "/echo", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("InvalidBody", func(t *testing.T) {
		handler, err := Handle[echoRequest, echoResponse](
			func(context.Context, domain.Principal, *echoRequest) (echoResponse, error) {
				t.Fatal("method must not be called")
				return echoResponse{}, nil
			},
			nil, true, http.StatusOK,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r := withPrincipal(httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{")), caller)
		handler(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("ParserError", func(t *testing.T) {
		handler, err := Handle[echoRequest, echoResponse](
			func(context.Context, domain.Principal, *echoRequest) (echoResponse, error) {
				t.Fatal("method must not be called")
				return echoResponse{}, nil
			},
			func(context.Context, *http.Request, *echoRequest) error {
				return fmt.Errorf("%w: missing path param: id", ErrBadRequest)
			},
			false, http.StatusOK,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler(w, withPrincipal(httptest.NewRequest(http.MethodGet, "/echo", nil), caller))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing path param: id")
	})

	t.Run("DomainErrorMessageIsExposed", func(t *testing.T) {
		handler, err := Handle[echoRequest, echoResponse](
			func(context.Context, domain.Principal, *echoRequest) (echoResponse, error) {
				return echoResponse{}, domain.ErrAlreadyReviewed
			},
			nil, false, http.StatusOK,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler(w, withPrincipal(httptest.NewRequest(http.MethodGet, "/echo", nil), caller))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already reviewed")
	})

	t.Run("InternalErrorIsHidden", func(t *testing.T) {
		handler, err := Handle[echoRequest, echoResponse](
			func(context.Context, domain.Principal, *echoRequest) (echoResponse, error) {
				return echoResponse{}, errdefs.Internal(errors.New("password=secret"))
			},
			nil, false, http.StatusOK,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler(w, withPrincipal(httptest.NewRequest(http.MethodGet, "/echo", nil), caller))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret")
	})
}

// ── HandleWithCache ─────────────────────────────────────────────────

func TestHandleWithCache(t *testing.T) {
	keyFunc := func(*http.Request) (string, error) { return "echo-key", nil }

	t.Run("NilMethodReturnsError", func(t *testing.T) {
		_, err := HandleWithCache[echoRequest, echoResponse](nil, nil, false, newMemCache(), keyFunc, time.Minute)
		assert.ErrorIs(t, err, ErrNilMethod)
	})

	t.Run("MissThenHit", func(t *testing.T) {
		cache := newMemCache()
		calls := 0
		handler, err := HandleWithCache[echoRequest, echoResponse](
			func(context.Context, domain.Principal, *echoRequest) (echoResponse, error) {
				calls++
				return echoResponse{Greeting: "halo"}, nil
			},
			nil, false, cache, keyFunc, time.Minute,
		)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			handler(w, withPrincipal(httptest.NewRequest(http.MethodGet, "/echo", nil), caller))
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"greeting":"halo"}`, w.Body.String())
		}
		assert.Equal(t, 1, calls)
		assert.Contains(t, cache.data, "echo-key")
	})

	t.Run("ErrorIsNotCached", func(t *testing.T) {
		cache := newMemCache()
		handler, err := HandleWithCache[echoRequest, echoResponse](
			func(context.Context, domain.Principal, *echoRequest) (echoResponse, error) {
				return echoResponse{}, errdefs.ErrForbidden
			},
			nil, false, cache, keyFunc, time.Minute,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler(w, withPrincipal(httptest.NewRequest(http.MethodGet, "/echo", nil), caller))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, cache.data)
	})

	t.Run("InvalidatedDuringReadIsNotFilled", func(t *testing.T) {
		cache := newMemCache()
		calls := 0
		handler, err := HandleWithCache[echoRequest, echoResponse](
			func(ctx context.Context, _ domain.Principal, _ *echoRequest) (echoResponse, error) {
				calls++
				if calls == 1 {
					cache.Invalidate(ctx, "echo-key")
				}
				return echoResponse{Greeting: "basi"}, nil
			},
			nil, false, cache, keyFunc, time.Minute,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler(w, withPrincipal(httptest.NewRequest(http.MethodGet, "/echo", nil), caller))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, cache.data, "echo-key")

		w = httptest.NewRecorder()
		handler(w, withPrincipal(httptest.NewRequest(http.MethodGet, "/echo", nil), caller))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, calls)
		assert.Contains(t, cache.data, "echo-key")
	})

	t.Run("KeyErrorBypassesCache", func(t *testing.T) {
		cache := newMemCache()
		handler, err := HandleWithCache[echoRequest, echoResponse](
			func(context.Context, domain.Principal, *echoRequest) (echoResponse, error) {
				return echoResponse{Greeting: "halo"}, nil
			},
			nil, false, cache,
			func(*http.Request) (string, error) { return "", errors.New("no key") },
			time.Minute,
		)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		handler(w, withPrincipal(httptest.NewRequest(http.MethodGet, "/echo", nil), caller))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, cache.data)
	})
}
