package api

import (
	"net/http"

	"fake-auth/internal/identifier"
	"fake-auth/internal/models"

	log "github.com/sirupsen/logrus"
)

type UsersResponse struct {
	Users []models.User `json:"users"`
}

// @Summary      Get the user behind a token
// @Description  Exchanges a token issued by /login for the profile of the user it was issued to.
// @Tags         users
// @Produce      json
// @Param        token  query     string  true  "Token (32 hex characters)"
// @Success      200    {object}  UsersResponse
// @Failure      403    {object}  ErrorResponse "Token required / Invalid token"
// @Failure      500    {object}  ErrorResponse "Error processing request"
// @Router       /api/users/me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if len(query["token"]) > 1 {
		whoamiTotal.WithLabelValues("malformed").Inc()
		writeJSONError(w, http.StatusForbidden, "Invalid token")
		return
	}
	if query.Get("token") == "" {
		whoamiTotal.WithLabelValues("malformed").Inc()
		writeJSONError(w, http.StatusForbidden, "Token required")
		return
	}

	token, err := identifier.ParseToken(query.Get("token"))
	if err != nil {
		whoamiTotal.WithLabelValues("malformed").Inc()
		writeJSONError(w, http.StatusForbidden, "Invalid token")
		return
	}

	users, err := s.store.GetUsersByToken(r.Context(), token)
	if err != nil {
		whoamiTotal.WithLabelValues("error").Inc()
		log.WithError(err).Error("whoami: token lookup failed")
		writeJSONError(w, http.StatusInternalServerError, "Error processing request")
		return
	}
	if len(users) == 0 {
		whoamiTotal.WithLabelValues("not_found").Inc()
		writeJSONError(w, http.StatusForbidden, "Invalid token")
		return
	}

	whoamiTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, UsersResponse{Users: users})
}
