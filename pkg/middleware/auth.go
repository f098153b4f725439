package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"geofeed/pkg/session"

	"go.uber.org/zap"
)

var authRoutes = map[string]string{
	"/api/posts": http.MethodPost,
}

// errorBody mirrors the handlers error envelope without importing them.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Auth verifies the bearer token on mutating routes and puts the session
// into the request context. Read-only routes pass through untouched.
func Auth(logger *zap.SugaredLogger, sm session.SessionManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := authRoutes[r.URL.Path]

		if (!ok || m != r.Method) &&
			(!strings.HasPrefix(r.URL.Path, "/api/post/") ||
				(r.Method != http.MethodPost && r.Method != http.MethodDelete)) {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sess, err := sm.Check(ctx, r)
		if err != nil {
			logger.Error(err.Error())
			w.Header().Set("Content-type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			resp, _ := json.Marshal(&errorBody{Code: http.StatusUnauthorized, Message: "unauthorized"})
			w.Write(resp)

			return
		}

		ctx = context.WithValue(r.Context(), session.SessionKey, sess)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
