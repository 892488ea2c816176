package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/coursedeck/coursedeck/internal/command"
	"github.com/coursedeck/coursedeck/internal/domain"
	"github.com/coursedeck/coursedeck/internal/validate"
)

// ReviewCreateRequest is the JSON review form.
type ReviewCreateRequest struct {
	Rating  float64 `json:"rating" validate:"required,gte=0,lte=5"`
	Comment string  `json:"comment" validate:"max=2000"`
}

// ReviewCreate handles POST /v1/courses/{course_id}/reviews.
type ReviewCreate struct {
	SubmitCmd *command.SubmitReview
}

func (c ReviewCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	vars := mux.Vars(r)
	courseID, err := strconv.ParseInt(vars["course_id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var reqBody ReviewCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		logger.ErrorContext(ctx, "unable to parse request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := validate.Check(reqBody); err != nil {
		if fields, ok := validate.AsFieldErrors(err); ok {
			writeValidationFailure(w, fields)
			return
		}
		logger.ErrorContext(ctx, "unable to validate request body", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	review, err := c.SubmitCmd.Execute(ctx, command.SubmitReviewRequest{
		CourseID: courseID,
		UserID:   userID,
		Rating:   reqBody.Rating,
		Comment:  reqBody.Comment,
	})
	if errors.Is(err, domain.ErrCourseNotFound) {
		writeNotFound(w, "Course not found")
		return
	}
	if errors.Is(err, domain.ErrDuplicateReview) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to create review", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(review); err != nil {
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
