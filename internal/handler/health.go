package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/templui/okrledger/internal/response"
)

type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	err := h.db.PingContext(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, "database unavailable")
		return
	}
	response.OK(w, map[string]string{"status": "ok"})
}

func (h *HealthHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	response.NotFound(w, "route not found")
}
