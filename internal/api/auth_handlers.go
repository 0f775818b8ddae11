package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"fake-auth/internal/auth"
	"fake-auth/internal/database"
	"fake-auth/internal/identifier"
	"fake-auth/internal/models"

	log "github.com/sirupsen/logrus"
)

const (
	loginErrNoID       = "No ID specified"
	loginErrBadFormat  = "ID is not in the correct format"
	loginErrMalformed  = "ID was malformed"
	loginErrNoUser     = "Could not find matching user"
	loginErrProcessing = "error occurred processing login"
)

// Login failures are reported with status 200 and a plain-text body.
func writeLoginError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Error: %s", message)
}

// @Summary      Log in as a simulated user
// @Description  Records a fresh auth code for the user, issues a new implicit token and redirects to the configured redirect URI with the token appended as the token query parameter.
// @Tags         auth
// @Produce      plain
// @Param        id   query     string  true  "User identifier (16 hex characters)"
// @Success      302  {string}  string  "Redirect to redirect_uri?token=<32 hex characters>"
// @Success      200  {string}  string  "Error: <reason>"
// @Router       /login [get]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("id") {
		loginsTotal.WithLabelValues("malformed").Inc()
		writeLoginError(w, loginErrNoID)
		return
	}
	if len(query["id"]) != 1 {
		loginsTotal.WithLabelValues("malformed").Inc()
		writeLoginError(w, loginErrBadFormat)
		return
	}

	id, err := identifier.ParseUserID(query.Get("id"))
	if err != nil {
		loginsTotal.WithLabelValues("malformed").Inc()
		if errors.Is(err, identifier.ErrInvalidLength) {
			writeLoginError(w, loginErrBadFormat)
		} else {
			writeLoginError(w, loginErrMalformed)
		}
		return
	}

	ctx := r.Context()

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		log.WithError(err).WithField("user_id", id.String()).Error("login: user lookup failed")
		writeLoginError(w, loginErrProcessing)
		return
	}
	if user == nil {
		loginsTotal.WithLabelValues("not_found").Inc()
		writeLoginError(w, loginErrNoUser)
		return
	}

	var token *models.Token
	txErr := s.store.ExecTx(ctx, func(q database.Querier) error {
		authCode, err := auth.NewAuthCode()
		if err != nil {
			return err
		}
		// auth_code has no reader yet; it is recorded on every login.
		updated, err := q.SetUserAuthCode(ctx, user.ID, authCode)
		if err != nil {
			return fmt.Errorf("failed to set auth code: %w", err)
		}
		if !updated {
			return database.ErrUserNotFound
		}

		token, err = auth.IssueToken(ctx, q, models.TokenTypeImplicit, id)
		return err
	})
	if txErr != nil {
		loginsTotal.WithLabelValues("error").Inc()
		log.WithError(txErr).WithField("user_id", id.String()).Error("login: issuing credentials failed")
		writeLoginError(w, loginErrProcessing)
		return
	}

	location, err := redirectWithToken(s.config.RedirectURI, token.Token)
	if err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		log.WithError(err).Error("login: invalid redirect_uri")
		writeLoginError(w, loginErrProcessing)
		return
	}

	loginsTotal.WithLabelValues("success").Inc()
	http.Redirect(w, r, location, http.StatusFound)
}

func redirectWithToken(redirectURI string, token identifier.Token) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", err
	}
	if u.RawQuery != "" {
		u.RawQuery += "&"
	}
	u.RawQuery += "token=" + token.String()
	return u.String(), nil
}
