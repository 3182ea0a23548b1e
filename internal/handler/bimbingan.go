//go:generate mockgen -source=bimbingan.go -destination=mocks/engine_mocks.go -package=mocks
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/cache"
	"bimbingan_service/internal/ctxdata"
	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/logging"
	"bimbingan_service/internal/storage"
)

const multipartMemory = 8 << 20

type Engine interface {
	CreateSubmission(ctx context.Context, p domain.Principal, in *domain.CreateSubmissionInput) (*domain.SubmissionView, error)
	GiveFeedback(ctx context.Context, p domain.Principal, in *domain.FeedbackInput) (*domain.SubmissionView, error)
	AddReply(ctx context.Context, p domain.Principal, in *domain.ReplyInput) (*domain.ReplyView, error)
	ListReplies(ctx context.Context, p domain.Principal, submissionID uuid.UUID) ([]*domain.ReplyView, error)
	ListSubmissions(ctx context.Context, p domain.Principal, filter *domain.SubmissionFilter) ([]*domain.SubmissionView, error)
	GetSubmission(ctx context.Context, p domain.Principal, id uuid.UUID) (*domain.SubmissionView, error)
	PendingCount(ctx context.Context, p domain.Principal) (int, error)
	GetDocumentURL(ctx context.Context, p domain.Principal, id uuid.UUID, kind domain.DocumentKind) (string, error)
	GetStudentProgress(ctx context.Context, p domain.Principal, studentID uuid.UUID) (*domain.StudentProgress, error)
}

type Uploader interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
}

type BimbinganHandler struct {
	engine   Engine
	uploader Uploader
	cache    Cache
	cacheTTL time.Duration
}

func NewBimbinganHandler(engine Engine, uploader Uploader, c Cache, cacheTTL time.Duration) *BimbinganHandler {
	return &BimbinganHandler{
		engine:   engine,
		uploader: uploader,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (h *BimbinganHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Group(func(r chi.Router) {
		r.Post("/bimbingan", h.CreateSubmission)
		r.Get("/bimbingan", h.ListSubmissions)
		r.Get("/bimbingan/pending-count", h.PendingCount)
		r.Get("/bimbingan/{id}", h.GetSubmission)
		r.Post("/bimbingan/{id}/feedback", h.GiveFeedback)
		r.Get("/bimbingan/{id}/replies", h.ListReplies)
		r.Post("/bimbingan/{id}/replies", h.AddReply)
		r.Get("/bimbingan/{id}/document-url", h.GetDocumentURL)

		r.Get("/students/{id}/progress", h.GetStudentProgress)
	})
}

type idRequest struct {
	ID uuid.UUID
}

type documentURLRequest struct {
	ID   uuid.UUID
	Kind domain.DocumentKind
}

type countResponse struct {
	Count int `json:"count"`
}

type urlResponse struct {
	URL string `json:"url"`
}

type empty struct{}

func parseID(_ context.Context, r *http.Request, req *idRequest) error {
	id, err := parseIDParam(r, "id")
	if err != nil {
		return err
	}
	req.ID = id
	return nil
}

func (h *BimbinganHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	handler, err := Handle[domain.CreateSubmissionInput, *domain.SubmissionView](
		func(ctx context.Context, p domain.Principal, in *domain.CreateSubmissionInput) (*domain.SubmissionView, error) {
			view, err := h.engine.CreateSubmission(ctx, p, in)
			if err != nil {
				return nil, err
			}
			h.cache.Invalidate(ctx, cache.PendingCountKey(view.AdvisorID))
			return view, nil
		},
		h.parseCreateForm, false, http.StatusCreated,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func (h *BimbinganHandler) parseCreateForm(ctx context.Context, r *http.Request, in *domain.CreateSubmissionInput) error {
	if err := parseMultipart(r); err != nil {
		return err
	}
	in.Slot = domain.AdvisorSlot(r.FormValue("slot"))
	in.Title = r.FormValue("title")
	if note := r.FormValue("note"); note != "" {
		in.Note = &note
	}

	_, fh, err := r.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: file is required", ErrBadRequest)
	}
	doc, err := h.upload(ctx, fh)
	if err != nil {
		return err
	}
	in.Document = *doc
	return nil
}

func (h *BimbinganHandler) GiveFeedback(w http.ResponseWriter, r *http.Request) {
	handler, err := Handle[domain.FeedbackInput, *domain.SubmissionView](
		func(ctx context.Context, p domain.Principal, in *domain.FeedbackInput) (*domain.SubmissionView, error) {
			view, err := h.engine.GiveFeedback(ctx, p, in)
			if err != nil {
				return nil, err
			}
			h.cache.Invalidate(ctx, cache.PendingCountKey(view.AdvisorID))
			return view, nil
		},
		h.parseFeedbackForm, false, http.StatusOK,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func (h *BimbinganHandler) parseFeedbackForm(ctx context.Context, r *http.Request, in *domain.FeedbackInput) error {
	id, err := parseIDParam(r, "id")
	if err != nil {
		return err
	}
	if err := parseMultipart(r); err != nil {
		return err
	}
	in.SubmissionID = id
	in.Status = domain.Status(r.FormValue("status"))
	if feedback := r.FormValue("feedback"); feedback != "" {
		in.Feedback = &feedback
	}

	_, fh, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	doc, err := h.upload(ctx, fh)
	if err != nil {
		return err
	}
	in.Document = doc
	return nil
}

func (h *BimbinganHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	handler, err := Handle[domain.SubmissionFilter, []*domain.SubmissionView](
		h.engine.ListSubmissions, parseSubmissionFilter, false, http.StatusOK,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func parseSubmissionFilter(_ context.Context, r *http.Request, filter *domain.SubmissionFilter) error {
	q := r.URL.Query()

	for param, dst := range map[string]**uuid.UUID{
		"student_id": &filter.StudentID,
		"advisor_id": &filter.AdvisorID,
	} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: %s is not a valid id", ErrBadRequest, param)
		}
		*dst = &id
	}

	if raw := q.Get("status"); raw != "" {
		status := domain.Status(strings.ToLower(raw))
		filter.Status = &status
	}
	if raw := q.Get("slot"); raw != "" {
		slot := domain.AdvisorSlot(strings.ToLower(raw))
		filter.Slot = &slot
	}
	return nil
}

func (h *BimbinganHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	handler, err := Handle[idRequest, *domain.SubmissionView](
		func(ctx context.Context, p domain.Principal, req *idRequest) (*domain.SubmissionView, error) {
			return h.engine.GetSubmission(ctx, p, req.ID)
		},
		parseID, false, http.StatusOK,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func (h *BimbinganHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	handler, err := HandleWithCache[empty, countResponse](
		func(ctx context.Context, p domain.Principal, _ *empty) (countResponse, error) {
			n, err := h.engine.PendingCount(ctx, p)
			return countResponse{Count: n}, err
		},
		nil, false,
		h.cache, buildPendingCountKey, h.cacheTTL,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func buildPendingCountKey(r *http.Request) (string, error) {
	p, ok := ctxdata.GetPrincipal(r.Context())
	if !ok || !p.Is(domain.RoleAdvisor) {
		return "", ErrUnauthenticated
	}
	return cache.PendingCountKey(p.ID), nil
}

func (h *BimbinganHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	handler, err := Handle[domain.ReplyInput, *domain.ReplyView](
		h.engine.AddReply,
		func(_ context.Context, r *http.Request, in *domain.ReplyInput) error {
			id, err := parseIDParam(r, "id")
			if err != nil {
				return err
			}
			in.SubmissionID = id
			return nil
		},
		true, http.StatusCreated,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func (h *BimbinganHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	handler, err := Handle[idRequest, []*domain.ReplyView](
		func(ctx context.Context, p domain.Principal, req *idRequest) ([]*domain.ReplyView, error) {
			return h.engine.ListReplies(ctx, p, req.ID)
		},
		parseID, false, http.StatusOK,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func (h *BimbinganHandler) GetDocumentURL(w http.ResponseWriter, r *http.Request) {
	handler, err := Handle[documentURLRequest, urlResponse](
		func(ctx context.Context, p domain.Principal, req *documentURLRequest) (urlResponse, error) {
			url, err := h.engine.GetDocumentURL(ctx, p, req.ID, req.Kind)
			return urlResponse{URL: url}, err
		},
		func(_ context.Context, r *http.Request, req *documentURLRequest) error {
			id, err := parseIDParam(r, "id")
			if err != nil {
				return err
			}
			req.ID = id
			req.Kind = domain.DocumentKind(r.URL.Query().Get("kind"))
			if req.Kind == "" {
				req.Kind = domain.DocumentKindSubmission
			}
			return nil
		},
		false, http.StatusOK,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func (h *BimbinganHandler) GetStudentProgress(w http.ResponseWriter, r *http.Request) {
	handler, err := Handle[idRequest, *domain.StudentProgress](
		func(ctx context.Context, p domain.Principal, req *idRequest) (*domain.StudentProgress, error) {
			return h.engine.GetStudentProgress(ctx, p, req.ID)
		},
		parseID, false, http.StatusOK,
	)
	if err != nil {
		panic(err)
	}
	handler(w, r)
}

func parseMultipart(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

// upload stores a PDF from the form under the caller's prefix.
func (h *BimbinganHandler) upload(ctx context.Context, fh *multipart.FileHeader) (*domain.DocumentRef, error) {
	p, ok := ctxdata.GetPrincipal(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	doc := &domain.DocumentRef{
		OriginalName: fh.Filename,
		Size:         fh.Size,
		MediaType:    fh.Header.Get("Content-Type"),
	}
	if !doc.IsPDF() {
		return nil, domain.ErrNotPDF
	}

	key, err := storage.DocumentKey(p.ID, fh.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build document key: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	defer f.Close()

	if err := h.uploader.Put(ctx, key, f, fh.Size, domain.MediaTypePDF); err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}
	logging.FromContext(ctx, logging.NewNop()).Debug(ctx, "Document uploaded", zap.String("key", key))

	doc.Path = key
	return doc, nil
}
