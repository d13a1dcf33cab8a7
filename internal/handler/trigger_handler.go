package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"passwordless-auth/internal/challenge"
	"passwordless-auth/internal/events"
)

// TriggerHandler exposes the identity-backend trigger hooks as webhook
// endpoints. A self-hosted backend calls them in the same sequence the
// hosted provider drives its Lambda triggers: create, verify, define,
// looping per session until define reaches a terminal decision.
type TriggerHandler struct {
	stages  *challenge.Stages
	decider challenge.Decider
	hooks   *challenge.Hooks
	events  *events.Publisher
	logger  *zap.Logger
}

func NewTriggerHandler(stages *challenge.Stages, decider challenge.Decider, hooks *challenge.Hooks, publisher *events.Publisher, logger *zap.Logger) *TriggerHandler {
	return &TriggerHandler{
		stages:  stages,
		decider: decider,
		hooks:   hooks,
		events:  publisher,
		logger:  logger,
	}
}

func (h *TriggerHandler) RegisterRoutes(r chi.Router) {
	r.Route("/triggers", func(r chi.Router) {
		r.Post("/pre-sign-up", h.PreSignUp)
		r.Post("/create-auth-challenge", h.CreateAuthChallenge)
		r.Post("/verify-auth-challenge", h.VerifyAuthChallenge)
		r.Post("/define-auth-challenge", h.DefineAuthChallenge)
		r.Post("/post-authentication", h.PostAuthentication)
	})
}

// challengeRound is the wire form of one session round, shaped after the
// hosted provider's ChallengeResult. A null challenge_result means the
// round has not been verified yet.
type challengeRound struct {
	ChallengeName     string `json:"challenge_name"`
	ChallengeResult   *bool  `json:"challenge_result"`
	ChallengeMetadata string `json:"challenge_metadata"`
}

func (r challengeRound) toRound() challenge.Round {
	outcome := challenge.OutcomePending
	if r.ChallengeResult != nil {
		if *r.ChallengeResult {
			outcome = challenge.OutcomeCorrect
		} else {
			outcome = challenge.OutcomeIncorrect
		}
	}
	return challenge.Round{
		Kind:     challenge.Kind(r.ChallengeName),
		Outcome:  outcome,
		Metadata: r.ChallengeMetadata,
	}
}

func toSession(rounds []challengeRound) challenge.Session {
	session := make(challenge.Session, 0, len(rounds))
	for _, r := range rounds {
		session = append(session, r.toRound())
	}
	return session
}

type userPayload struct {
	Username       string            `json:"user_name"`
	UserAttributes map[string]string `json:"user_attributes"`
}

func (p userPayload) toUser() challenge.User {
	return challenge.User{
		Username:      p.Username,
		Email:         p.UserAttributes["email"],
		EmailVerified: p.UserAttributes["email_verified"] == "true",
	}
}

func (h *TriggerHandler) PreSignUp(w http.ResponseWriter, r *http.Request) {
	var req userPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	confirm := h.hooks.PreSignUp(r.Context(), req.toUser())
	respondWithJSON(w, http.StatusOK, map[string]bool{"auto_confirm_user": confirm})
}

type createChallengeRequest struct {
	UserEmail string           `json:"user_email"`
	Session   []challengeRound `json:"session"`
}

type createChallengeResponse struct {
	PrivateChallengeParameters map[string]string `json:"private_challenge_parameters"`
	ChallengeMetadata          string            `json:"challenge_metadata"`
}

func (h *TriggerHandler) CreateAuthChallenge(w http.ResponseWriter, r *http.Request) {
	var req createChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	if req.UserEmail == "" {
		respondWithError(w, http.StatusBadRequest, errors.New("user_email is required"), "Invalid request body")
		return
	}

	session := toSession(req.Session)
	result, err := h.stages.Create(r.Context(), req.UserEmail, session)
	if err != nil {
		if errors.Is(err, challenge.ErrCorruptMetadata) {
			h.logger.Error("corrupted session state", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, err, "Corrupted session state")
			return
		}
		h.logger.Error("failed to create challenge", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, err, "Failed to deliver one-time code")
		return
	}

	if len(session) == 0 {
		h.events.Publish(r.Context(), events.TypeChallengeDelivered, req.UserEmail, nil)
	}
	respondWithJSON(w, http.StatusOK, createChallengeResponse{
		PrivateChallengeParameters: map[string]string{"challenge": result.Code},
		ChallengeMetadata:          result.Metadata,
	})
}

type verifyChallengeRequest struct {
	ChallengeAnswer            string            `json:"challenge_answer"`
	PrivateChallengeParameters map[string]string `json:"private_challenge_parameters"`
}

func (h *TriggerHandler) VerifyAuthChallenge(w http.ResponseWriter, r *http.Request) {
	var req verifyChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	correct := challenge.Verify(req.ChallengeAnswer, req.PrivateChallengeParameters["challenge"])
	respondWithJSON(w, http.StatusOK, map[string]bool{"answer_correct": correct})
}

type defineChallengeRequest struct {
	UserEmail string           `json:"user_email"`
	Session   []challengeRound `json:"session"`
}

type defineChallengeResponse struct {
	IssueTokens        bool   `json:"issue_tokens"`
	FailAuthentication bool   `json:"fail_authentication"`
	ChallengeName      string `json:"challenge_name,omitempty"`
}

func (h *TriggerHandler) DefineAuthChallenge(w http.ResponseWriter, r *http.Request) {
	var req defineChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	decision := h.decider.Decide(toSession(req.Session))

	var resp defineChallengeResponse
	switch decision {
	case challenge.IssueTokens:
		resp.IssueTokens = true
		h.events.Publish(r.Context(), events.TypeLoginSucceeded, req.UserEmail, nil)
	case challenge.FailAuthentication:
		resp.FailAuthentication = true
		h.events.Publish(r.Context(), events.TypeLoginFailed, req.UserEmail, map[string]string{
			"reason": "retry budget exhausted",
		})
	default:
		resp.ChallengeName = string(challenge.KindCustomChallenge)
	}

	h.logger.Info("define-auth-challenge decision",
		zap.String("decision", decision.String()),
		zap.Int("rounds", len(req.Session)),
	)
	respondWithJSON(w, http.StatusOK, resp)
}

func (h *TriggerHandler) PostAuthentication(w http.ResponseWriter, r *http.Request) {
	var req userPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if err := h.hooks.PostAuthentication(r.Context(), req.toUser()); err != nil {
		h.logger.Error("post-authentication hook failed", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, err, "Failed to finalize authentication")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
