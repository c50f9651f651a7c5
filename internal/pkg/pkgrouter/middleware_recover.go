package pkgrouter

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				//nolint:err113,errorlint // this must compare directly
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				slog.ErrorContext(r.Context(), "panic on the server", "because", rvr)

				w.Header().Set("Content-Type", "application/json; charset=utf-8")

				if r.Header.Get("Connection") != "Upgrade" {
					w.WriteHeader(http.StatusInternalServerError)
				}

				//nolint:errcheck // response is already committed
				json.NewEncoder(w).Encode(map[string]string{
					"message": "internal server error",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
