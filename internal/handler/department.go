package handler

import (
	"net/http"
	"strings"

	"github.com/dukerupert/shoplisl/internal/department"
)

type departmentView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameGerman  string `json:"nameGerman"`
	NameEnglish string `json:"nameEnglish"`
	IconPath    string `json:"iconPath"`
}

type DepartmentHandler struct{}

func NewDepartmentHandler() *DepartmentHandler {
	return &DepartmentHandler{}
}

// List returns the department table in default order. ?lang=en selects
// English display names.
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	all := department.All()
	views := make([]departmentView, 0, len(all))
	for _, d := range all {
		views = append(views, departmentView{
			ID:          d.ID,
			Name:        department.Name(d.ID, lang),
			NameGerman:  d.NameGerman,
			NameEnglish: d.NameEnglish,
			IconPath:    department.IconPath(d.ID),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// Icon redirects to the department's icon file.
func (h *DepartmentHandler) Icon(w http.ResponseWriter, r *http.Request) {
	path := department.IconPath(r.PathValue("id"))
	if path == "" {
		writeMessage(w, http.StatusNotFound, "department not found")
		return
	}
	http.Redirect(w, r, path, http.StatusFound)
}

// Suggest guesses a department for ?name=.
func (h *DepartmentHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeMessage(w, http.StatusBadRequest, "name is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"departmentId": department.Suggest(name)})
}
