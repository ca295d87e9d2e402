package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gitea.com/go-chi/session"

	"github.com/blogem/webtemplate/services"
	"github.com/blogem/webtemplate/userctx"
)

// RedirectAfterLoginKey holds the page an unauthenticated visitor asked for
const RedirectAfterLoginKey = "redirect_after_login"

// SessionOptions configures the in-memory session store
type SessionOptions struct {
	CookieName string
	Secure     bool
	Lifetime   time.Duration
}

// Sessioner creates the session middleware
func Sessioner(opts SessionOptions) (func(http.Handler) http.Handler, error) {
	lifetime := int64(opts.Lifetime / time.Second)
	if lifetime <= 0 {
		lifetime = 3600
	}

	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     opts.CookieName,
		Secure:         opts.Secure, // Set to true when USE_HTTPS=true (production)
		Gclifetime:     lifetime,
		Maxlifetime:    lifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	return sessionHandler, nil
}

// SessionStore returns the visitor's session store attached by Sessioner
func SessionStore(r *http.Request) services.SessionStore {
	return session.GetSession(r)
}

// RequireSession ensures every request carries an initialised session and
// puts the client IP and email on the request context
func RequireSession(sessions services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)

			sess, err := sessions.Init(SessionStore(r), ip, r.UserAgent())
			if err != nil {
				slog.Error("failed to initialise session", "error", err, "ip", ip)
				http.Error(w, "Failed to initialise session", http.StatusInternalServerError)
				return
			}

			ctx := userctx.SetClientIP(r.Context(), ip)
			if sess.EmailAddress != "" {
				ctx = userctx.SetUserEmail(ctx, sess.EmailAddress)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the session is logged on.
// If not, redirects to / where the logon dialogs run and stores the intended destination
func RequireAuth(sessions services.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := SessionStore(r)

			if sess := sessions.Current(store); sess == nil || !sess.IsAuthenticated {
				// Store the intended destination for redirect after logon
				if err := store.Set(RedirectAfterLoginKey, r.URL.Path); err != nil {
					slog.Error("failed to store redirect target", "error", err, "path", r.URL.Path)
				}
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
