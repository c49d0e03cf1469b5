package handler

import (
	"net/http"
	"time"

	"github.com/templui/okrledger/internal/ctxkeys"
	"github.com/templui/okrledger/internal/response"
	"github.com/templui/okrledger/internal/service"
)

type CoverageHandler struct {
	coverageService  *service.CoverageService
	objectiveService *service.ObjectiveService
}

func NewCoverageHandler(coverageService *service.CoverageService, objectiveService *service.ObjectiveService) *CoverageHandler {
	return &CoverageHandler{
		coverageService:  coverageService,
		objectiveService: objectiveService,
	}
}

func (h *CoverageHandler) KeyResult(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	canAct, err := h.objectiveService.CanActOnKeyResult(user, id)
	if err != nil {
		writeError(w, r, err, "failed to authorize coverage", "key_result_id", id)
		return
	}
	if !canAct {
		writeError(w, r, service.ErrForbidden, "coverage forbidden")
		return
	}

	grid, err := h.coverageService.KeyResultGrid(id, time.Now().UTC())
	if err != nil {
		writeError(w, r, err, "failed to build coverage", "key_result_id", id)
		return
	}

	response.OK(w, grid)
}

func (h *CoverageHandler) Objective(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	canAct, err := h.objectiveService.CanActOnObjective(user, id)
	if err != nil {
		writeError(w, r, err, "failed to authorize coverage", "objective_id", id)
		return
	}
	if !canAct {
		writeError(w, r, service.ErrForbidden, "coverage forbidden")
		return
	}

	grid, err := h.coverageService.ObjectiveGrid(id, time.Now().UTC())
	if err != nil {
		writeError(w, r, err, "failed to build coverage", "objective_id", id)
		return
	}

	response.OK(w, grid)
}

// Missing lists the actor's overdue and due-now months.
func (h *CoverageHandler) Missing(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	missing, err := h.coverageService.MissingReviews(user.ID, time.Now().UTC())
	if err != nil {
		writeError(w, r, err, "failed to list missing reviews", "user_id", user.ID)
		return
	}

	response.OK(w, missing)
}
