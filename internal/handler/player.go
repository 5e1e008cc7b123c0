package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
	"github.com/osse101/MelodyQuest_Go/internal/player"
	"github.com/osse101/MelodyQuest_Go/internal/sse"
)

// URLParamPlayerID names the player path segment
const URLParamPlayerID = "playerID"

type playerCtxKey struct{}

// PlayerHandler serves every per-player endpoint
type PlayerHandler struct {
	players *player.Registry
	hub     *sse.Hub
}

// NewPlayerHandler creates a handler over the registry. hub may be nil when
// event streaming is not offered.
func NewPlayerHandler(players *player.Registry, hub *sse.Hub) *PlayerHandler {
	return &PlayerHandler{players: players, hub: hub}
}

// PlayerCtx resolves {playerID} and stores the player in the request context
func (h *PlayerHandler) PlayerCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		p, err := h.players.Get(ctx, chi.URLParam(r, URLParamPlayerID))
		if err != nil {
			respondServiceError(w, r, "Load player", err)
			return
		}
		ctx = logger.WithPlayerID(ctx, p.ID)
		ctx = context.WithValue(ctx, playerCtxKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playerFrom(r *http.Request) *player.Player {
	p, _ := r.Context().Value(playerCtxKey{}).(*player.Player)
	return p
}

// QuizChoiceView is a quiz choice without its answer flag
type QuizChoiceView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// QuizView describes the quiz on the current scene
type QuizView struct {
	Scene     domain.SceneIndex `json:"scene"`
	Question  string            `json:"question"`
	Choices   []QuizChoiceView  `json:"choices"`
	Completed bool              `json:"completed"`
}

// StateResponse is the player's snapshot plus what the current scene offers
type StateResponse struct {
	PlayerID string                  `json:"player_id"`
	State    domain.ProgressionState `json:"state"`
	Quiz     *QuizView               `json:"quiz,omitempty"`
	CanScan  bool                    `json:"can_scan"`
	Scanning bool                    `json:"scanning"`
}

func stateResponse(p *player.Player) StateResponse {
	state := p.Controller.State()
	resp := StateResponse{
		PlayerID: p.ID,
		State:    state,
		CanScan:  p.Arena.Supports(state.CurrentScene),
		Scanning: p.Arena.Running(state.CurrentScene),
	}
	if quiz, ok := p.Controller.Config().QuizFor(state.CurrentScene); ok {
		view := &QuizView{Scene: quiz.Scene, Question: quiz.Question}
		for _, c := range quiz.Choices {
			view.Choices = append(view.Choices, QuizChoiceView{ID: c.ID, Label: c.Label})
		}
		for _, done := range state.QuizzesDone {
			if done == quiz.Scene {
				view.Completed = true
			}
		}
		resp.Quiz = view
	}
	return resp
}

// HandleCreate registers a new player
func (h *PlayerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := h.players.Create(r.Context())
	if err != nil {
		respondServiceError(w, r, ErrMsgCreatePlayerFailed, err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgPlayerCreated, "player_id", p.ID)
	respondJSON(w, http.StatusCreated, stateResponse(p))
}

// HandleState returns the player's snapshot
func (h *PlayerHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, stateResponse(playerFrom(r)))
}

// NavigateRequest targets an absolute scene
type NavigateRequest struct {
	Scene *int `json:"scene" validate:"required"`
}

// HandleNavigate moves to an absolute scene
func (h *PlayerHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Navigate"); err != nil {
		return
	}
	p := playerFrom(r)
	if _, err := p.Controller.NavigateTo(r.Context(), *req.Scene); err != nil {
		respondServiceError(w, r, "Navigate", err)
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(p))
}

// StepRequest moves relative to the current scene
type StepRequest struct {
	Delta int `json:"delta" validate:"ne=0,min=-100,max=100"`
}

// HandleStep moves by delta within the navigation ceiling
func (h *PlayerHandler) HandleStep(w http.ResponseWriter, r *http.Request) {
	var req StepRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Step"); err != nil {
		return
	}
	p := playerFrom(r)
	if _, err := p.Controller.Step(r.Context(), req.Delta); err != nil {
		respondServiceError(w, r, "Step", err)
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(p))
}

// SpinResponse carries the wheel outcome and the updated snapshot
type SpinResponse struct {
	Result domain.SpinResult `json:"result"`
	StateResponse
}

// HandleSpin spins the wheel once
func (h *PlayerHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	p := playerFrom(r)
	result, err := p.Controller.Spin(r.Context())
	if err != nil {
		respondServiceError(w, r, "Spin", err)
		return
	}
	respondJSON(w, http.StatusOK, SpinResponse{Result: result, StateResponse: stateResponse(p)})
}

// HandleReset clears the player's progress and stops any scan
func (h *PlayerHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	p := playerFrom(r)
	p.Arena.StopAll()
	p.Controller.Reset(r.Context())
	respondJSON(w, http.StatusOK, stateResponse(p))
}

// QuizAnswerRequest answers the quiz on a scene
type QuizAnswerRequest struct {
	Scene  *int   `json:"scene" validate:"required,min=0"`
	Choice string `json:"choice" validate:"required,max=64"`
}

// QuizAnswerResponse carries the answer outcome and the updated snapshot
type QuizAnswerResponse struct {
	Result domain.QuizResult `json:"result"`
	StateResponse
}

// HandleQuizAnswer checks a quiz answer
func (h *PlayerHandler) HandleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req QuizAnswerRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Quiz answer"); err != nil {
		return
	}
	p := playerFrom(r)
	result, err := p.Controller.AnswerQuiz(r.Context(), domain.SceneIndex(*req.Scene), req.Choice)
	if err != nil {
		respondServiceError(w, r, "Quiz answer", err)
		return
	}
	respondJSON(w, http.StatusOK, QuizAnswerResponse{Result: result, StateResponse: stateResponse(p)})
}

// HandleDebugGoto jumps to any valid scene, ignoring forward gating
func (h *PlayerHandler) HandleDebugGoto(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Debug goto"); err != nil {
		return
	}
	p := playerFrom(r)
	if _, err := p.Controller.ForceNavigate(r.Context(), *req.Scene); err != nil {
		respondServiceError(w, r, "Debug goto", err)
		return
	}
	respondJSON(w, http.StatusOK, stateResponse(p))
}

// GrantRequest grants a token directly
type GrantRequest struct {
	Token string `json:"token" validate:"required,token"`
}

// GrantResponse reports whether the ledger changed
type GrantResponse struct {
	Added bool `json:"added"`
	StateResponse
}

// HandleDebugGrant grants a token outside of any scene rule
func (h *PlayerHandler) HandleDebugGrant(w http.ResponseWriter, r *http.Request) {
	var req GrantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Debug grant"); err != nil {
		return
	}
	p := playerFrom(r)
	token, _ := domain.ParseRewardToken(strings.ToUpper(req.Token))
	added := p.Controller.GrantReward(r.Context(), token)
	respondJSON(w, http.StatusOK, GrantResponse{Added: added, StateResponse: stateResponse(p)})
}

// HandleEvents streams the player's presentation events
func (h *PlayerHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusNotFound, ErrMsgUnavailableError)
		return
	}
	sse.Serve(h.hub, w, r, playerFrom(r).ID)
}
