package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"chargenet/internal/apperr"
	"chargenet/internal/service"
)

// EntityHandlers serves the generic CRUD surface under /api/entities.
type EntityHandlers struct {
	entities *service.EntityService
	logger   *zap.Logger
}

// NewEntityHandlers returns handler struct.
func NewEntityHandlers(entities *service.EntityService, logger *zap.Logger) *EntityHandlers {
	return &EntityHandlers{entities: entities, logger: logger}
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, apperr.Newf(apperr.KindValidation, "invalid %s", name)
	}
	return value, nil
}

// List handles GET /api/entities/{type}.
func (h *EntityHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.entities.List(r.Context(), r.PathValue("type"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Columns handles GET /api/entities/{type}/columns.
func (h *EntityHandlers) Columns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.entities.Columns(r.PathValue("type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, columns)
}

// Get handles GET /api/entities/{type}/{id}.
func (h *EntityHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	record, err := h.entities.Get(r.Context(), r.PathValue("type"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Create handles POST /api/entities/{type}.
func (h *EntityHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := h.entities.Create(r.Context(), r.PathValue("type"), fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// Update handles PUT /api/entities/{type}/{id}.
func (h *EntityHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	affected, err := h.entities.Update(r.Context(), r.PathValue("type"), id, fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"affected": affected})
}

// Delete handles DELETE /api/entities/{type}/{id}.
func (h *EntityHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	affected, err := h.entities.Delete(r.Context(), r.PathValue("type"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"affected": affected})
}
