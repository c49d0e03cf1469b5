package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/templui/okrledger/internal/ctxkeys"
	"github.com/templui/okrledger/internal/logger"
	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/response"
	"github.com/templui/okrledger/internal/service"
)

type ObjectiveHandler struct {
	objectiveService *service.ObjectiveService
	exportService    *service.ExportService
}

func NewObjectiveHandler(objectiveService *service.ObjectiveService, exportService *service.ExportService) *ObjectiveHandler {
	return &ObjectiveHandler{
		objectiveService: objectiveService,
		exportService:    exportService,
	}
}

// authorized loads the objective and checks the actor may act on it.
func (h *ObjectiveHandler) authorized(w http.ResponseWriter, r *http.Request) (*model.User, int64, bool) {
	user := ctxkeys.User(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, 0, false
	}

	canAct, err := h.objectiveService.CanActOnObjective(user, id)
	if err != nil {
		writeError(w, r, err, "failed to authorize objective", "objective_id", id)
		return nil, 0, false
	}
	if !canAct {
		writeError(w, r, service.ErrForbidden, "objective forbidden")
		return nil, 0, false
	}

	return user, id, true
}

func (h *ObjectiveHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	dueDate, err := payload.Date("due_date")
	if err != nil {
		writeError(w, r, err, "failed to parse objective")
		return
	}

	objective, err := h.objectiveService.Create(user.ID, payload.String("title"), payload.String("description"), dueDate)
	if err != nil {
		writeError(w, r, err, "failed to create objective", "user_id", user.ID)
		return
	}

	logger.FromContext(r.Context()).Info("objective created", "objective_id", objective.ID, "user_id", user.ID)
	response.Created(w, objective)
}

func (h *ObjectiveHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	objectives, err := h.objectiveService.Objectives(user.ID)
	if err != nil {
		writeError(w, r, err, "failed to load objectives", "user_id", user.ID)
		return
	}

	response.OK(w, objectives)
}

func (h *ObjectiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.authorized(w, r)
	if !ok {
		return
	}

	objective, err := h.objectiveService.ByID(id)
	if err != nil {
		writeError(w, r, err, "failed to load objective", "objective_id", id)
		return
	}

	response.OK(w, objective)
}

func (h *ObjectiveHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.authorized(w, r)
	if !ok {
		return
	}

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	dueDate, err := payload.OptionalDate("due_date")
	if err != nil {
		writeError(w, r, err, "failed to parse objective")
		return
	}

	var due time.Time
	if dueDate != nil {
		due = *dueDate
	}

	err = h.objectiveService.Update(user, id, payload.String("title"), payload.String("description"), due)
	if err != nil {
		writeError(w, r, err, "failed to update objective", "objective_id", id)
		return
	}

	objective, err := h.objectiveService.ByID(id)
	if err != nil {
		writeError(w, r, err, "failed to load objective", "objective_id", id)
		return
	}

	response.OK(w, objective)
}

func (h *ObjectiveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, id, ok := h.authorized(w, r)
	if !ok {
		return
	}

	err := h.objectiveService.Delete(id)
	if err != nil {
		writeError(w, r, err, "failed to delete objective", "objective_id", id)
		return
	}

	logger.FromContext(r.Context()).Info("objective deleted", "objective_id", id, "user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ObjectiveHandler) AddKeyResult(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.authorized(w, r)
	if !ok {
		return
	}

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	createdAt, err := payload.OptionalDate("created_at")
	if err != nil {
		writeError(w, r, err, "failed to parse key result")
		return
	}

	keyResult, err := h.objectiveService.AddKeyResult(id, payload.String("title"), createdAt)
	if err != nil {
		writeError(w, r, err, "failed to create key result", "objective_id", id)
		return
	}

	response.Created(w, keyResult)
}

// Export downloads the objective with its ledger and calendars as JSON.
func (h *ObjectiveHandler) Export(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.authorized(w, r)
	if !ok {
		return
	}

	export, err := h.exportService.Export(id, time.Now().UTC())
	if err != nil {
		writeError(w, r, err, "failed to export objective", "objective_id", id)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="objective-%d-%s.json"`, id, time.Now().UTC().Format("2006-01-02")))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err = enc.Encode(export)
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to write export", "error", err, "objective_id", id)
	}
}

// Archive stores the export in object storage and returns a download link.
func (h *ObjectiveHandler) Archive(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.authorized(w, r)
	if !ok {
		return
	}

	archive, err := h.exportService.Archive(id, time.Now().UTC())
	if err != nil {
		writeError(w, r, err, "failed to archive objective", "objective_id", id)
		return
	}

	response.Created(w, archive)
}
