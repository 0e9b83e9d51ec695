package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/restaurant-backend/pkg/errors"
	"github.com/angelmondragon/restaurant-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

// ParsePathID reads a positive integer chi URL parameter.
func ParsePathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.Validation("Invalid " + name).WithDetails(map[string]any{"field": name, "value": raw})
	}
	return id, nil
}

// ParseQueryID reads an optional positive integer query parameter.
func ParseQueryID(r *http.Request, key string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, pkgerrors.Validation("Invalid " + key).WithDetails(map[string]any{"field": key, "value": raw})
	}
	return &id, nil
}

// RequireQueryID is ParseQueryID for parameters the route cannot work without.
func RequireQueryID(r *http.Request, key string) (int64, error) {
	id, err := ParseQueryID(r, key)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, pkgerrors.Validation(key + " is required").WithDetails(map[string]any{"field": key})
	}
	return *id, nil
}

// ParsePage reads the optional ?limit= and ?cursor= paging parameters.
func ParsePage(r *http.Request) (pagination.Params, error) {
	q := r.URL.Query()
	page := pagination.Params{Cursor: strings.TrimSpace(q.Get("cursor"))}
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return page, pkgerrors.Validation("Invalid limit").WithDetails(map[string]any{"field": "limit", "value": raw})
		}
		page.Limit = limit
	}
	return page, nil
}
