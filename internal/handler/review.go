package handler

import (
	"net/http"

	"github.com/templui/okrledger/internal/ctxkeys"
	"github.com/templui/okrledger/internal/response"
	"github.com/templui/okrledger/internal/service"
	"github.com/templui/okrledger/internal/validation"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Submit handles POST /api/reviews/quarterly. Saving the same quarter again
// overwrites the earlier review.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}

	input, err := validation.ParseQuarterlyReview(payload)
	if err != nil {
		writeError(w, r, err, "failed to parse quarterly review")
		return
	}

	review, err := h.reviewService.SubmitQuarterlyReview(user.ID, input.Quarter, input.Overrides, input.Narrative)
	if err != nil {
		writeError(w, r, err, "failed to save quarterly review", "quarter", input.Quarter.String())
		return
	}

	response.OK(w, review)
}

// Get handles GET /api/reviews/quarterly. With quarter and year it returns
// that review, without them every review of the actor.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	quarter, err := validation.ParseQuarterQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err, "failed to parse review query")
		return
	}

	if quarter == nil {
		reviews, err := h.reviewService.QuarterlyReviews(user.ID)
		if err != nil {
			writeError(w, r, err, "failed to load quarterly reviews")
			return
		}
		response.OK(w, reviews)
		return
	}

	review, err := h.reviewService.QuarterlyReview(user.ID, *quarter)
	if err != nil {
		writeError(w, r, err, "failed to load quarterly review", "quarter", quarter.String())
		return
	}

	response.OK(w, review)
}

// Grading handles GET /api/reviews/quarterly/grading?quarter=&year=, the
// computed grades a review would start from.
func (h *ReviewHandler) Grading(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	quarter, err := validation.ParseQuarterQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err, "failed to parse review query")
		return
	}
	if quarter == nil {
		writeError(w, r, validation.NewError("quarter", "is required"), "missing quarter")
		return
	}

	grading, err := h.reviewService.Grading(user.ID, *quarter)
	if err != nil {
		writeError(w, r, err, "failed to compute grading", "quarter", quarter.String())
		return
	}

	response.OK(w, grading)
}
