package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"passwordless-auth/internal/account"
	"passwordless-auth/internal/identity"
)

// accountService is the slice of account.Service the handler needs;
// tests substitute an in-memory implementation.
type accountService interface {
	Create(ctx context.Context, in account.CreateAccountInput) (*account.Account, error)
	Get(ctx context.Context, id string) (*account.Account, error)
	Update(ctx context.Context, in account.UpdateAccountInput) (*account.Account, error)
}

// AccountHandler serves the account CRUD endpoints.
type AccountHandler struct {
	service accountService
	logger  *zap.Logger
}

func NewAccountHandler(service accountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{service: service, logger: logger}
}

func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", h.CreateAccount)
		r.Get("/{accountID}", h.GetAccount)
		r.Patch("/", h.PatchAccount)
	})
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var in account.CreateAccountInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	acct, err := h.service.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrValidation):
			respondWithError(w, http.StatusUnprocessableEntity, err, "Invalid request parameters")
		case errors.Is(err, identity.ErrUserAlreadyExists):
			respondWithError(w, http.StatusConflict, err, "User already exists")
		default:
			h.logger.Error("failed to create account", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, err, "Failed to create account")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated,
		successResponse(map[string]string{"result": acct.ID.String()}, "Account created"))
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	acct, err := h.service.Get(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrValidation):
			respondWithError(w, http.StatusUnprocessableEntity, err, "Invalid request parameters")
		case errors.Is(err, account.ErrAccountNotFound):
			respondWithError(w, http.StatusNotFound, err, "Account not found")
		default:
			h.logger.Error("failed to load account",
				zap.String("account_id", accountID), zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, err, "Failed to load account")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, successResponse(acct, ""))
}

func (h *AccountHandler) PatchAccount(w http.ResponseWriter, r *http.Request) {
	var in account.UpdateAccountInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondWithError(w, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	acct, err := h.service.Update(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrValidation):
			respondWithError(w, http.StatusUnprocessableEntity, err, "Invalid request parameters")
		case errors.Is(err, account.ErrAccountNotFound):
			// An update against a missing account is a client mistake,
			// not a lookup miss.
			respondWithError(w, http.StatusBadRequest, err, "Account doesn't exist, cannot update details")
		default:
			h.logger.Error("failed to update account", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, err, "Failed to update account")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, successResponse(acct, "Update successful"))
}
