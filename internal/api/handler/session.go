package handler

import (
	"net/http"

	"github.com/mcoot/planetgame/internal/api/apierr"
	"github.com/mcoot/planetgame/internal/api/middleware"
	"github.com/mcoot/planetgame/internal/api/request"
	"github.com/mcoot/planetgame/internal/api/response"
	"github.com/mcoot/planetgame/internal/services/identity"
)

// SessionHandler issues session tokens
type SessionHandler struct {
	identity *identity.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(identityService *identity.Service) *SessionHandler {
	return &SessionHandler{identity: identityService}
}

// Create handles POST /api/v1/session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.SessionRequest
	if err := decodeOptional(r, &req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Username == "" {
		creds := middleware.ExtractCredentials(r)
		req.Username = creds.Name
		req.Password = creds.Password
	}
	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}

	token, err := h.identity.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	setSessionCookie(w, token)
	response.JSON(w, http.StatusCreated, response.Session{
		Name:         req.Username,
		SessionToken: token,
	})
}
