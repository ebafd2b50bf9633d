package menu

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// PathParam is the query parameter carrying the current page path.
const PathParam = "path"

// API serves resolved menus over HTTP.
type API struct {
	resolver *Resolver
}

// NewAPI creates a new API backed by the provided resolver.
func NewAPI(r *Resolver) *API {
	return &API{resolver: r}
}

// RegisterHandlers registers every API route with the provided function.
func (a *API) RegisterHandlers(register func(pattern string, handler http.Handler)) {
	register("GET /menus/{id}", a.MenuHandler())
	register("GET /menus/{id}/pagination", a.PaginationHandler())
	register("GET /menus/{id}/breadcrumbs", a.BreadcrumbsHandler())
}

// MenuHandler responds with the resolved menu tree as JSON.
func (a *API) MenuHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tree := a.resolver.Resolve(r.Context(), r.PathValue("id"))
		writeJSON(w, http.StatusOK, tree)
	})
}

// PaginationHandler responds with the previous and next items of the page
// named by the path query parameter.
func (a *API) PaginationHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tree := a.resolver.Resolve(r.Context(), r.PathValue("id"))
		writeJSON(w, http.StatusOK, Paginate(tree, r.URL.Query().Get(PathParam)))
	})
}

// BreadcrumbsHandler responds with the breadcrumb trail of the page named
// by the path query parameter.
func (a *API) BreadcrumbsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tree := a.resolver.Resolve(r.Context(), r.PathValue("id"))
		writeJSON(w, http.StatusOK, Breadcrumbs(tree, r.URL.Query().Get(PathParam)))
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}
