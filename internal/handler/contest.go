package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/PredictionContest_Go/internal/contest"
	"github.com/osse101/PredictionContest_Go/internal/domain"
	"github.com/osse101/PredictionContest_Go/internal/eventlog"
	"github.com/osse101/PredictionContest_Go/internal/leaderboard"
	"github.com/osse101/PredictionContest_Go/internal/ledger"
	"github.com/osse101/PredictionContest_Go/internal/logger"
)

// ResolveRequest carries a game result from the results feed
type ResolveRequest struct {
	QuestionID uuid.UUID  `json:"question_id" validate:"required"`
	Outcome    string     `json:"outcome" validate:"required,max=64"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// ContestDetail is a contest together with its questions
type ContestDetail struct {
	*domain.Contest
	Questions []domain.PredictionQuestion `json:"questions"`
}

// ContestHandler serves the contest, prediction and standings endpoints
type ContestHandler struct {
	contests    contest.Service
	ledger      ledger.Service
	leaderboard leaderboard.Service
	events      eventlog.Service
	now         func() time.Time
}

// NewContestHandler creates a contest handler
func NewContestHandler(contests contest.Service, ledgerSvc ledger.Service, board leaderboard.Service, events eventlog.Service) *ContestHandler {
	return &ContestHandler{
		contests:    contests,
		ledger:      ledgerSvc,
		leaderboard: board,
		events:      events,
		now:         time.Now,
	}
}

// HandleCreateContest creates a contest from a full configuration
// @Summary Create contest
// @Tags contests
// @Accept json
// @Produce json
// @Param request body domain.ContestConfig true "Contest configuration"
// @Success 201 {object} domain.Contest
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/contests [post]
func (h *ContestHandler) HandleCreateContest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, ok := decodeRequest[domain.ContestConfig](w, r, OpCreateContest)
		if !ok {
			return
		}

		c, err := h.contests.CreateContest(r.Context(), cfg)
		if err != nil {
			respondServiceError(w, r, OpCreateContest, err)
			return
		}

		logger.FromContext(r.Context()).Info("Contest created", "contest_id", c.ID, "name", c.Name)
		respondJSON(w, http.StatusCreated, c)
	}
}

// HandleListContests lists contests, optionally filtered by state
// @Summary List contests
// @Tags contests
// @Produce json
// @Param state query string false "PENDING, ACTIVE, EVALUATING, FINALIZED or CANCELLED"
// @Param limit query int false "Maximum contests to return"
// @Success 200 {array} domain.Contest
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/contests [get]
func (h *ContestHandler) HandleListContests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var state *domain.ContestState
		if raw := r.URL.Query().Get(QueryState); raw != "" {
			s := domain.ContestState(strings.ToUpper(raw))
			if !validState(s) {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidContestState)
				return
			}
			state = &s
		}

		limit, ok := getLimitParam(w, r, contest.DefaultListLimit, contest.DefaultListLimit)
		if !ok {
			return
		}

		contests, err := h.contests.ListContests(r.Context(), state, limit)
		if err != nil {
			respondServiceError(w, r, OpListContests, err)
			return
		}
		if contests == nil {
			contests = []domain.Contest{}
		}
		respondJSON(w, http.StatusOK, contests)
	}
}

// HandleGetContest returns a contest and its questions
// @Summary Get contest
// @Tags contests
// @Produce json
// @Param id path string true "Contest ID"
// @Success 200 {object} ContestDetail
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contests/{id} [get]
func (h *ContestHandler) HandleGetContest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contestIDParam(w, r)
		if !ok {
			return
		}

		c, err := h.contests.GetContest(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, OpGetContest, err)
			return
		}
		questions, err := h.contests.GetQuestions(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, OpGetContest, err)
			return
		}
		respondJSON(w, http.StatusOK, ContestDetail{Contest: c, Questions: questions})
	}
}

// HandleCancelContest cancels a contest that has not finalized
// @Summary Cancel contest
// @Tags contests
// @Produce json
// @Param id path string true "Contest ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/contests/{id}/cancel [post]
func (h *ContestHandler) HandleCancelContest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contestIDParam(w, r)
		if !ok {
			return
		}

		if err := h.contests.Cancel(r.Context(), id); err != nil {
			respondServiceError(w, r, OpCancelContest, err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgContestCancelled})
	}
}

// HandleResolve records a game result and scores the question
// @Summary Resolve question
// @Description Replayed results for an already resolved question are acknowledged without rescoring
// @Tags results
// @Accept json
// @Produce json
// @Param request body ResolveRequest true "Game result"
// @Success 200 {object} domain.ResolutionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/results [post]
func (h *ContestHandler) HandleResolve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest[ResolveRequest](w, r, OpResolveQuestion)
		if !ok {
			return
		}

		resolvedAt := h.now()
		if req.ResolvedAt != nil {
			resolvedAt = *req.ResolvedAt
		}

		result, err := h.contests.Resolve(r.Context(), req.QuestionID, req.Outcome, resolvedAt)
		if err != nil {
			respondServiceError(w, r, OpResolveQuestion, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleSubmitPrediction creates or replaces a participant's pick
// @Summary Submit prediction
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body ledger.SubmitRequest true "Prediction"
// @Success 200 {object} domain.PredictionSubmission
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/predictions [post]
func (h *ContestHandler) HandleSubmitPrediction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeRequest[ledger.SubmitRequest](w, r, OpSubmitPrediction)
		if !ok {
			return
		}

		sub, err := h.ledger.Submit(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, OpSubmitPrediction, err)
			return
		}
		respondJSON(w, http.StatusOK, sub)
	}
}

// HandleGetLeaderboard returns the live standings
// @Summary Get leaderboard
// @Tags contests
// @Produce json
// @Param id path string true "Contest ID"
// @Success 200 {array} domain.LeaderboardEntry
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/contests/{id}/leaderboard [get]
func (h *ContestHandler) HandleGetLeaderboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contestIDParam(w, r)
		if !ok {
			return
		}

		entries, err := h.leaderboard.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, OpGetLeaderboard, err)
			return
		}
		if entries == nil {
			entries = []domain.LeaderboardEntry{}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// HandleGetResult returns the immutable contest result
// @Summary Get contest result
// @Description Returns 202 while the contest is still running or evaluating
// @Tags contests
// @Produce json
// @Param id path string true "Contest ID"
// @Success 200 {object} domain.ContestResult
// @Success 202 {object} StatusResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} StatusResponse
// @Router /api/v1/contests/{id}/result [get]
func (h *ContestHandler) HandleGetResult() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contestIDParam(w, r)
		if !ok {
			return
		}

		result, err := h.contests.GetContestResult(r.Context(), id)
		switch {
		case errors.Is(err, domain.ErrResultPending):
			respondJSON(w, http.StatusAccepted, StatusResponse{Status: MsgResultPending})
		case errors.Is(err, domain.ErrContestCancelled):
			respondJSON(w, http.StatusConflict, StatusResponse{
				Status: MsgResultCancelled,
				State:  string(domain.ContestStateCancelled),
			})
		case err != nil:
			respondServiceError(w, r, OpGetResult, err)
		default:
			respondJSON(w, http.StatusOK, result)
		}
	}
}

// HandleGetHistory returns a participant's submissions with their scores
// @Summary Get participant history
// @Tags predictions
// @Produce json
// @Param id path string true "Contest ID"
// @Param participantID path string true "Participant ID"
// @Success 200 {array} domain.PredictionSubmission
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/contests/{id}/participants/{participantID}/history [get]
func (h *ContestHandler) HandleGetHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contestIDParam(w, r)
		if !ok {
			return
		}
		participantID := strings.TrimSpace(chi.URLParam(r, ParamParticipantID))
		if participantID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidParticipantID)
			return
		}

		history, err := h.ledger.History(r.Context(), id, participantID)
		if err != nil {
			respondServiceError(w, r, OpGetHistory, err)
			return
		}
		if history == nil {
			history = []domain.PredictionSubmission{}
		}
		respondJSON(w, http.StatusOK, history)
	}
}

// HandleGetEvents returns the contest's audit trail, newest first
// @Summary Get contest events
// @Tags contests
// @Produce json
// @Param id path string true "Contest ID"
// @Param limit query int false "Maximum events to return"
// @Success 200 {array} eventlog.Entry
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/contests/{id}/events [get]
func (h *ContestHandler) HandleGetEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := contestIDParam(w, r)
		if !ok {
			return
		}
		limit, ok := getLimitParam(w, r, DefaultEventLimit, MaxEventLimit)
		if !ok {
			return
		}

		events, err := h.events.ContestTrail(r.Context(), id.String(), limit)
		if err != nil {
			respondServiceError(w, r, OpGetEvents, err)
			return
		}
		if events == nil {
			events = []eventlog.Entry{}
		}
		respondJSON(w, http.StatusOK, events)
	}
}

func validState(s domain.ContestState) bool {
	switch s {
	case domain.ContestStatePending, domain.ContestStateActive, domain.ContestStateEvaluating,
		domain.ContestStateFinalized, domain.ContestStateCancelled:
		return true
	}
	return false
}
