package handler

import (
	"net/http"

	"github.com/templui/okrledger/internal/ctxkeys"
	"github.com/templui/okrledger/internal/response"
	"github.com/templui/okrledger/internal/service"
	"github.com/templui/okrledger/internal/validation"
)

type ProgressHandler struct {
	progressService  *service.ProgressService
	objectiveService *service.ObjectiveService
}

func NewProgressHandler(progressService *service.ProgressService, objectiveService *service.ObjectiveService) *ProgressHandler {
	return &ProgressHandler{
		progressService:  progressService,
		objectiveService: objectiveService,
	}
}

// Submit handles POST /api/progress.
func (h *ProgressHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	input, err := validation.ParseProgress(payload)
	if err != nil {
		writeError(w, r, err, "failed to parse progress")
		return
	}

	// Unknown key results fall through as not allowed; the service reports
	// them as not found before looking at the decision.
	canAct, err := h.objectiveService.CanActOnKeyResult(user, input.KeyResultID)
	if err != nil && !service.IsNotFound(err) {
		writeError(w, r, err, "failed to authorize progress", "key_result_id", input.KeyResultID)
		return
	}

	entry, err := h.progressService.SubmitProgress(user.ID, canAct, input)
	if err != nil {
		writeError(w, r, err, "failed to submit progress", "key_result_id", input.KeyResultID)
		return
	}

	response.Created(w, entry)
}

// List handles GET /api/progress?key_result_ids=1,2&month=&year=.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	query, err := validation.ParseProgressQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err, "failed to parse progress query")
		return
	}

	for _, id := range query.KeyResultIDs {
		canAct, err := h.objectiveService.CanActOnKeyResult(user, id)
		if err != nil {
			writeError(w, r, err, "failed to authorize progress read", "key_result_id", id)
			return
		}
		if !canAct {
			writeError(w, r, service.ErrForbidden, "progress read forbidden")
			return
		}
	}

	entries, err := h.progressService.Progress(query.KeyResultIDs, query.Month, query.Year)
	if err != nil {
		writeError(w, r, err, "failed to load progress")
		return
	}

	response.OK(w, entries)
}
