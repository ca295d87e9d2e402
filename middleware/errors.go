package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/blogem/webtemplate/services"
)

// ErrorLogger recovers panics in handlers and records them in the application log
func ErrorLogger(logService services.LogService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ip := ClientIP(r)
				message := fmt.Sprintf("%v", rec)
				slog.Error("panic in handler", "error", message, "path", r.URL.Path, "ip", ip, "stack", string(debug.Stack()))

				if err := logService.InsertLogData(r.Context(), message, ip); err != nil {
					slog.Error("failed to record panic in log", "error", err)
				}

				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
