package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/blogem/webtemplate/authenticator"
	"github.com/blogem/webtemplate/middleware"
	"github.com/blogem/webtemplate/services"
)

const stateKey = "state"

// AuthController handles single sign-on and logout
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{
		services: services,
	}
}

// Login initiates the authentication process
func (ac *AuthController) Login(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Generate random state
		state, err := generateRandomState()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Save the state in the session to validate in callback
		if err := middleware.SessionStore(r).Set(stateKey, state); err != nil {
			http.Error(w, "Failed to save state: "+err.Error(), http.StatusInternalServerError)
			return
		}

		// Redirect to the identity provider's login page
		http.Redirect(w, r, auth.GetAuthURL(state), http.StatusTemporaryRedirect)
	}
}

// Callback handles the callback from the identity provider
func (ac *AuthController) Callback(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := middleware.SessionStore(r)

		// Verify state
		storedState, ok := store.Get(stateKey).(string)
		if !ok || storedState == "" {
			http.Error(w, "State not found in session", http.StatusBadRequest)
			return
		}

		if r.URL.Query().Get("state") != storedState {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		// Clear the state from session
		if err := store.Delete(stateKey); err != nil {
			slog.Error("failed to clear login state", "error", err)
		}

		// Exchange the code for a token
		token, err := auth.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			reportError(r, ac.services, err)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		claims, err := auth.GetClaims(r.Context(), token)
		if err != nil {
			reportError(r, ac.services, err)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		email := claims.Email()
		if email == "" {
			reportError(r, ac.services, fmt.Errorf("identity provider returned no email or subject"))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		sess, err := ac.services.Session.SetAuthenticated(store, email)
		if err != nil {
			reportError(r, ac.services, err)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		// The dialog logon is no longer needed
		if err := ac.services.Dialog.Clear(store); err != nil {
			reportError(r, ac.services, err)
		}

		if err := ac.services.Log.InsertLogData(r.Context(), services.MessageLogon, sess.IPAddress); err != nil {
			reportError(r, ac.services, err)
		}

		// Home sends the visitor on to the page they first asked for
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Logout handles GET /logout
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := ac.services.Logon.Logout(r.Context(), middleware.SessionStore(r)); err != nil {
		reportError(r, ac.services, err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
