package http_handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"blog-service/internal/custom_errors"
	model "blog-service/internal/domain/models"
	ports "blog-service/internal/domain/ports/output"
)

type PostCreator interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
}

type CreatePostHandler struct {
	postService  PostCreator
	validate     *validator.Validate
	log          ports.Logger
	maxBodyBytes int64
}

func NewCreatePostHandler(postService PostCreator, validate *validator.Validate, log ports.Logger, maxBodyBytes int64) *CreatePostHandler {
	return &CreatePostHandler{
		postService:  postService,
		validate:     validate,
		log:          log,
		maxBodyBytes: maxBodyBytes,
	}
}

type createPostRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Date    *string `json:"date"`
}

type CreatePostRequestInternal struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

func (h *CreatePostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		h.log.Debug("CreatePost body rejected", slog.String("error", err.Error()))
		writeDecodeError(w, h.log, err)
		return
	}

	validationReq := &CreatePostRequestInternal{
		Title:   req.Title,
		Content: req.Content,
	}
	if err := h.validate.Struct(validationReq); err != nil {
		h.log.Debug("CreatePost validation failed", slog.String("error", err.Error()))
		writeError(w, h.log, http.StatusBadRequest, msgContentRequired)
		return
	}

	post, err := h.postService.CreatePost(r.Context(), &model.CreatePostDTO{
		Title:   req.Title,
		Content: req.Content,
		Date:    req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostValidation):
			writeError(w, h.log, http.StatusBadRequest, msgContentRequired)
		default:
			h.log.Error("Failed to create post", slog.String("error", err.Error()))
			writeError(w, h.log, http.StatusInternalServerError, "Failed to create post")
		}
		return
	}

	writeJSON(w, h.log, http.StatusCreated, post)
}
