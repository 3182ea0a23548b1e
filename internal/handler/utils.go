package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/ctxdata"
	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/errdefs"
	"bimbingan_service/internal/logging"
)

var (
	ErrNilMethod       = errors.New("method is nil")
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Cache is a read-through response cache. Fills are conditional on the key's version so
// a value computed before an invalidation never lands after it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Version(ctx context.Context, key string) (int64, error)
	SetIfVersion(ctx context.Context, key string, data []byte, ttl time.Duration, version int64)
	Invalidate(ctx context.Context, keys ...string)
}

// Method is an engine operation bound to the caller's principal.
type Method[Req any, Resp any] func(ctx context.Context, p domain.Principal, req *Req) (Resp, error)

func mapErr(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrBadRequest), errors.Is(err, errdefs.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errdefs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errdefs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errdefs.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// errorMessage hides the cause of server errors from the client.
func errorMessage(err error, statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return http.StatusText(statusCode)
	}
	return err.Error()
}

func Handle[Req any, Resp any](
	method Method[Req, Resp],
	reqParser func(context.Context, *http.Request, *Req) error,
	parseBody bool,
	successStatus int,
) (http.HandlerFunc, error) {
	if method == nil {
		return nil, ErrNilMethod
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.FromContext(ctx, logging.NewNop())

		p, ok := ctxdata.GetPrincipal(ctx)
		if !ok {
			writeErrorJSON(w, http.StatusUnauthorized, ErrUnauthenticated.Error())
			return
		}

		req, ok := decodeRequest(w, r, logger, reqParser, parseBody)
		if !ok {
			return
		}

		resp, err := method(ctx, p, req)
		if err != nil {
			statusCode := mapErr(err)
			if statusCode >= http.StatusInternalServerError {
				logger.Error(ctx, "Request failed", zap.Error(err))
			} else {
				logger.Debug(ctx, "Request rejected", zap.Int("status", statusCode), zap.Error(err))
			}
			writeErrorJSON(w, statusCode, errorMessage(err, statusCode))
			return
		}

		data, err := json.Marshal(resp)
		if err != nil {
			logger.Error(ctx, "Failed to serialize response", zap.Error(err))
			writeErrorJSON(w, http.StatusInternalServerError, "failed to serialize response")
			return
		}
		writeJSON(w, successStatus, data)
	}, nil
}

// HandleWithCache serves GET-style reads from cache when the key resolves, and fills it on success.
func HandleWithCache[Req any, Resp any](
	method Method[Req, Resp],
	reqParser func(context.Context, *http.Request, *Req) error,
	parseBody bool,
	cache Cache,
	keyFunc func(r *http.Request) (string, error),
	ttl time.Duration,
) (http.HandlerFunc, error) {
	if method == nil {
		return nil, ErrNilMethod
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.FromContext(ctx, logging.NewNop())

		p, ok := ctxdata.GetPrincipal(ctx)
		if !ok {
			writeErrorJSON(w, http.StatusUnauthorized, ErrUnauthenticated.Error())
			return
		}

		var version int64
		key, err := keyFunc(r)
		if err == nil {
			if data, ok := cache.Get(ctx, key); ok {
				writeJSON(w, http.StatusOK, data)
				return
			}
			if version, err = cache.Version(ctx, key); err != nil {
				logger.Warn(ctx, "Cache version unavailable, not filling", zap.Error(err))
				key = ""
			}
		}

		req, ok := decodeRequest(w, r, logger, reqParser, parseBody)
		if !ok {
			return
		}

		resp, err := method(ctx, p, req)
		if err != nil {
			statusCode := mapErr(err)
			writeErrorJSON(w, statusCode, errorMessage(err, statusCode))
			return
		}

		data, err := json.Marshal(resp)
		if err != nil {
			writeErrorJSON(w, http.StatusInternalServerError, "failed to serialize response")
			return
		}
		writeJSON(w, http.StatusOK, data)

		if key != "" {
			cache.SetIfVersion(ctx, key, data, ttl, version)
		}
	}, nil
}

func decodeRequest[Req any](
	w http.ResponseWriter,
	r *http.Request,
	logger *logging.Logger,
	reqParser func(context.Context, *http.Request, *Req) error,
	parseBody bool,
) (*Req, bool) {
	ctx := r.Context()
	req := new(Req)

	if parseBody {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error(ctx, "Failed to read request body", zap.Error(err))
			statusCode := mapErr(err)
			writeErrorJSON(w, statusCode, "failed to read request body")
			return nil, false
		}
		if err := json.Unmarshal(body, req); err != nil {
			logger.Debug(ctx, "Failed to parse request body", zap.Error(err))
			writeErrorJSON(w, http.StatusBadRequest, "invalid request body")
			return nil, false
		}
	}

	if reqParser != nil {
		if err := reqParser(ctx, r, req); err != nil {
			statusCode := mapErr(err)
			if statusCode >= http.StatusInternalServerError {
				logger.Error(ctx, "Failed to prepare request", zap.Error(err))
			} else {
				logger.Debug(ctx, "Failed to parse request path and query", zap.Error(err))
			}
			writeErrorJSON(w, statusCode, errorMessage(err, statusCode))
			return nil, false
		}
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, statusCode int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func writeErrorJSON(w http.ResponseWriter, statusCode int, message string) {
	resp, _ := json.Marshal(map[string]string{"error": message})
	writeJSON(w, statusCode, resp)
}

func parsePathParam(r *http.Request, key string) (string, error) {
	val := chi.URLParam(r, key)
	if val == "" {
		return "", fmt.Errorf("%w: missing path param: %s", ErrBadRequest, key)
	}
	return val, nil
}

func parseIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val, err := parsePathParam(r, key)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s is not a valid id", ErrBadRequest, key)
	}
	return id, nil
}
