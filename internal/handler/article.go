package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/shoplisl/internal/department"
	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/dukerupert/shoplisl/internal/shopping"
)

type ArticleHandler struct {
	svc    *shopping.Service
	logger *slog.Logger
}

func NewArticleHandler(svc *shopping.Service, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{svc: svc, logger: logger}
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.ListArticles(r.Context())
	if err != nil {
		writeError(w, h.logger, "list articles", err)
		return
	}
	if articles == nil {
		articles = []model.Article{}
	}
	writeJSON(w, http.StatusOK, articles)
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.svc.GetArticle(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "get article", err)
		return
	}
	if article == nil {
		writeMessage(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.ArticleDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	// Pick a department from the name if none was given
	if draft.DepartmentID == "" {
		if id := department.Suggest(draft.Name); id != department.Misc {
			draft.DepartmentID = id
		}
	}

	article, err := h.svc.CreateArticle(r.Context(), draft)
	if err != nil {
		writeError(w, h.logger, "create article", err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ArticlePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	article, err := h.svc.UpdateArticle(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, "update article", err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteArticle(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, "delete article", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
