package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardloop/cardloop-api/internal/api/shared"
	"github.com/cardloop/cardloop-api/internal/domain"
	"github.com/cardloop/cardloop-api/internal/domain/srs"
	"github.com/cardloop/cardloop-api/internal/service/review"
)

// mockReviewService is a mock implementation of the review.Service interface.
type mockReviewService struct {
	submitFn   func(ctx context.Context, userID, flashcardID uuid.UUID, quality int, latencyMs *int) (*review.ReviewResult, error)
	queueFn    func(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error)
	postponeFn func(ctx context.Context, userID, flashcardID uuid.UUID, days int) (*domain.Flashcard, error)
}

func (m *mockReviewService) SubmitReview(
	ctx context.Context,
	userID, flashcardID uuid.UUID,
	quality int,
	latencyMs *int,
) (*review.ReviewResult, error) {
	return m.submitFn(ctx, userID, flashcardID, quality, latencyMs)
}

func (m *mockReviewService) ReviewQueue(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error) {
	return m.queueFn(ctx, userID)
}

func (m *mockReviewService) PostponeReview(ctx context.Context, userID, flashcardID uuid.UUID, days int) (*domain.Flashcard, error) {
	return m.postponeFn(ctx, userID, flashcardID, days)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	flashcardID := uuid.New()

	nextReview := time.Now().UTC().AddDate(0, 0, 15)
	successResult := &review.ReviewResult{
		ReviewID:    uuid.New(),
		FlashcardID: flashcardID,
		Quality:     4,
		CreatedAt:   time.Now().UTC(),
		State: domain.SchedulingState{
			EaseFactor:   2.5,
			IntervalDays: 15,
			Repetition:   3,
			NextReviewAt: &nextReview,
		},
	}

	tests := []struct {
		name           string
		userIDInCtx    uuid.UUID
		body           string
		serviceResult  *review.ReviewResult
		serviceError   error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			userIDInCtx:    userID,
			body:           fmt.Sprintf(`{"flashcard_id":%q,"quality":4}`, flashcardID),
			serviceResult:  successResult,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Success With Quality Zero",
			userIDInCtx:    userID,
			body:           fmt.Sprintf(`{"flashcard_id":%q,"quality":0}`, flashcardID),
			serviceResult:  successResult,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing User ID",
			userIDInCtx:    uuid.Nil,
			body:           fmt.Sprintf(`{"flashcard_id":%q,"quality":4}`, flashcardID),
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   CodeUnauthorized,
		},
		{
			name:           "Malformed JSON",
			userIDInCtx:    userID,
			body:           `{"flashcard_id":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeValidationError,
		},
		{
			name:           "Missing Quality",
			userIDInCtx:    userID,
			body:           fmt.Sprintf(`{"flashcard_id":%q}`, flashcardID),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeValidationError,
		},
		{
			name:           "Invalid Flashcard ID",
			userIDInCtx:    userID,
			body:           `{"flashcard_id":"not-a-uuid","quality":4}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeValidationError,
		},
		{
			name:           "Quality Out Of Range",
			userIDInCtx:    userID,
			body:           fmt.Sprintf(`{"flashcard_id":%q,"quality":6}`, flashcardID),
			serviceError:   srs.ErrInvalidQuality,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeInvalidQuality,
		},
		{
			name:           "Flashcard Not Found",
			userIDInCtx:    userID,
			body:           fmt.Sprintf(`{"flashcard_id":%q,"quality":4}`, flashcardID),
			serviceError:   review.ErrCardNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   CodeFlashcardNotFound,
		},
		{
			name:           "Review Persist Failure",
			userIDInCtx:    userID,
			body:           fmt.Sprintf(`{"flashcard_id":%q,"quality":4}`, flashcardID),
			serviceError:   fmt.Errorf("insert failed: %w", review.ErrReviewPersist),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeReviewSubmissionFailed,
		},
		{
			name:           "Scheduling Update Failure",
			userIDInCtx:    userID,
			body:           fmt.Sprintf(`{"flashcard_id":%q,"quality":4}`, flashcardID),
			serviceError:   fmt.Errorf("update failed: %w", review.ErrSchedulingUpdate),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeFlashcardUpdateFailed,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockService := &mockReviewService{
				submitFn: func(ctx context.Context, userID, flashcardID uuid.UUID, quality int, latencyMs *int) (*review.ReviewResult, error) {
					if tc.serviceError != nil {
						return nil, tc.serviceError
					}
					return tc.serviceResult, nil
				},
			}
			handler := NewReviewHandler(mockService, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(tc.body))
			if tc.userIDInCtx != uuid.Nil {
				ctx := context.WithValue(req.Context(), shared.UserIDContextKey, tc.userIDInCtx)
				req = req.WithContext(ctx)
			}

			rr := httptest.NewRecorder()
			handler.SubmitReview(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedStatus == http.StatusCreated {
				var result review.ReviewResult
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
				assert.Equal(t, tc.serviceResult.FlashcardID, result.FlashcardID)
				assert.Equal(t, tc.serviceResult.State.IntervalDays, result.State.IntervalDays)
				return
			}

			var errResp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
			assert.Equal(t, tc.expectedCode, errResp.Code)
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestSubmitReviewPassesLatency(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	flashcardID := uuid.New()

	var gotLatency *int
	mockService := &mockReviewService{
		submitFn: func(ctx context.Context, userID, flashcardID uuid.UUID, quality int, latencyMs *int) (*review.ReviewResult, error) {
			gotLatency = latencyMs
			return &review.ReviewResult{FlashcardID: flashcardID, Quality: quality}, nil
		},
	}
	handler := NewReviewHandler(mockService, testLogger())

	body := fmt.Sprintf(`{"flashcard_id":%q,"quality":5,"latency_ms":1200}`, flashcardID)
	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewBufferString(body))
	req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))

	rr := httptest.NewRecorder()
	handler.SubmitReview(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, gotLatency)
	assert.Equal(t, 1200, *gotLatency)
}

func TestPostponeCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	flashcardID := uuid.New()

	postponed := time.Now().UTC().AddDate(0, 0, 5)
	card := &domain.Flashcard{
		ID:     flashcardID,
		UserID: userID,
		Front:  "front",
		Back:   "back",
		SchedulingState: domain.SchedulingState{
			EaseFactor:   2.5,
			IntervalDays: 3,
			Repetition:   2,
			NextReviewAt: &postponed,
		},
	}

	tests := []struct {
		name           string
		body           string
		serviceError   error
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"days":5}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Zero Days",
			body:           `{"days":0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Never Reviewed",
			body:           `{"days":5}`,
			serviceError:   srs.ErrNotScheduled,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Not Found",
			body:           `{"days":5}`,
			serviceError:   review.ErrCardNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockService := &mockReviewService{
				postponeFn: func(ctx context.Context, userID, flashcardID uuid.UUID, days int) (*domain.Flashcard, error) {
					if tc.serviceError != nil {
						return nil, tc.serviceError
					}
					return card, nil
				},
			}
			handler := NewReviewHandler(mockService, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/cards/"+flashcardID.String()+"/postpone", bytes.NewBufferString(tc.body))
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)

			routeCtx := chi.NewRouteContext()
			routeCtx.URLParams.Add("id", flashcardID.String())
			ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

			rr := httptest.NewRecorder()
			handler.PostponeCard(rr, req.WithContext(ctx))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				var got domain.Flashcard
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
				assert.Equal(t, card.IntervalDays, got.IntervalDays)
				require.NotNil(t, got.NextReviewAt)
			}
		})
	}
}

func TestGetReviewQueue(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	due := time.Now().UTC().Add(-time.Hour)
	card := &domain.Flashcard{
		ID:     uuid.New(),
		DeckID: uuid.New(),
		UserID: userID,
		Front:  "front",
		Back:   "back",
		SchedulingState: domain.SchedulingState{
			EaseFactor:   2.5,
			IntervalDays: 1,
			NextReviewAt: &due,
		},
	}

	tests := []struct {
		name           string
		userIDInCtx    uuid.UUID
		serviceResult  []*domain.Flashcard
		serviceError   error
		expectedStatus int
		expectedLen    int
	}{
		{
			name:           "Success",
			userIDInCtx:    userID,
			serviceResult:  []*domain.Flashcard{card},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name:           "Empty Queue",
			userIDInCtx:    userID,
			serviceResult:  []*domain.Flashcard{},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:           "Missing User ID",
			userIDInCtx:    uuid.Nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Service Error",
			userIDInCtx:    userID,
			serviceError:   fmt.Errorf("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockService := &mockReviewService{
				queueFn: func(ctx context.Context, userID uuid.UUID) ([]*domain.Flashcard, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			handler := NewReviewHandler(mockService, testLogger())

			req := httptest.NewRequest(http.MethodGet, "/reviews/queue", nil)
			if tc.userIDInCtx != uuid.Nil {
				ctx := context.WithValue(req.Context(), shared.UserIDContextKey, tc.userIDInCtx)
				req = req.WithContext(ctx)
			}

			rr := httptest.NewRecorder()
			handler.GetReviewQueue(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				var cards []*domain.Flashcard
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cards))
				assert.Len(t, cards, tc.expectedLen)
			}
		})
	}
}
