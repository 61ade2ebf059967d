package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/TWRT/todo-client/internal/pkg/logger"
)

type statusWriter struct {
	http.ResponseWriter
	statusCode   int
	responseSize int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.responseSize += n
	return n, err
}

// withLogging attaches log to the request context and logs each request
// once it has been served.
func withLogging(log *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(logger.ToContext(r.Context(), log))
		sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sw, r)

		logger.Infof(r.Context(), "%s %s -> %d (%d bytes) in %s",
			r.Method, r.URL.Path, sw.statusCode, sw.responseSize, time.Since(start))
	})
}
