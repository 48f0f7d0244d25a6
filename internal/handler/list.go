package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/dukerupert/shoplisl/internal/shopping"
)

type ListHandler struct {
	svc    *shopping.Service
	logger *slog.Logger
}

func NewListHandler(svc *shopping.Service, logger *slog.Logger) *ListHandler {
	return &ListHandler{svc: svc, logger: logger}
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.ListLists(r.Context())
	if err != nil {
		writeError(w, h.logger, "list lists", err)
		return
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.GetList(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "get list", err)
		return
	}
	if list == nil {
		writeMessage(w, http.StatusNotFound, "list not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) Grouped(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.svc.GroupedList(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "group list", err)
		return
	}
	if grouped == nil {
		writeMessage(w, http.StatusNotFound, "list not found")
		return
	}
	writeJSON(w, http.StatusOK, grouped)
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.ListDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	list, err := h.svc.CreateList(r.Context(), draft)
	if err != nil {
		writeError(w, h.logger, "create list", err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ListPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	list, err := h.svc.UpdateList(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, h.logger, "update list", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteList(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.logger, "delete list", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Seed builds a checked-off list from free-text entries.
func (h *ListHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req shopping.SeedRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	report, err := h.svc.SeedList(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, "seed list", err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// --- Items ---

// listMutation adapts a service call that returns the updated list.
func (h *ListHandler) listMutation(op string, fn func(r *http.Request) (*model.ShoppingList, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := fn(r)
		if err != nil {
			writeError(w, h.logger, op, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	h.listMutation("add item", func(r *http.Request) (*model.ShoppingList, error) {
		return h.svc.AddArticleToList(r.Context(), r.PathValue("id"), r.PathValue("article_id"))
	})(w, r)
}

func (h *ListHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.listMutation("remove item", func(r *http.Request) (*model.ShoppingList, error) {
		return h.svc.RemoveArticleFromList(r.Context(), r.PathValue("id"), r.PathValue("article_id"))
	})(w, r)
}

func (h *ListHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	h.listMutation("toggle item", func(r *http.Request) (*model.ShoppingList, error) {
		return h.svc.ToggleItemChecked(r.Context(), r.PathValue("id"), r.PathValue("article_id"))
	})(w, r)
}

func (h *ListHandler) UpdateItemAmount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount string `json:"amount"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h.listMutation("update item amount", func(r *http.Request) (*model.ShoppingList, error) {
		return h.svc.UpdateListItemAmount(r.Context(), r.PathValue("id"), r.PathValue("article_id"), req.Amount)
	})(w, r)
}

func (h *ListHandler) ClearItems(w http.ResponseWriter, r *http.Request) {
	h.listMutation("clear items", func(r *http.Request) (*model.ShoppingList, error) {
		return h.svc.ClearAllItemsFromList(r.Context(), r.PathValue("id"))
	})(w, r)
}

func (h *ListHandler) ClearChecked(w http.ResponseWriter, r *http.Request) {
	h.listMutation("clear checked", func(r *http.Request) (*model.ShoppingList, error) {
		return h.svc.ClearCheckedItems(r.Context(), r.PathValue("id"))
	})(w, r)
}

func (h *ListHandler) UpdateDepartmentOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Order []string `json:"order"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h.listMutation("update department order", func(r *http.Request) (*model.ShoppingList, error) {
		return h.svc.UpdateListDepartmentOrder(r.Context(), r.PathValue("id"), req.Order)
	})(w, r)
}
