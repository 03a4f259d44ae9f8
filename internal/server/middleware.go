package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Houeta/employee-registry/internal/metrics"
	"github.com/gorilla/mux"
)

// StatusResponseWriter remembers the status code written through it.
type StatusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *StatusResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusResponseWriter) Write(data []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(data)
}

func (w *StatusResponseWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Logging logs every request with its status and duration.
func Logging(log *slog.Logger) mux.MiddlewareFunc {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			start := time.Now()
			srw := &StatusResponseWriter{ResponseWriter: writer}

			inner.ServeHTTP(srw, req)

			log.InfoContext(req.Context(), "Request served",
				"method", req.Method,
				"uri", req.URL.RequestURI(),
				"status", srw.Status(),
				"duration", time.Since(start).String(),
				"user_agent", req.UserAgent(),
			)
		})
	}
}

// Metrics records request duration by route template, method and status.
func Metrics(appMetrics *metrics.Metrics) mux.MiddlewareFunc {
	return func(inner http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			start := time.Now()
			srw := &StatusResponseWriter{ResponseWriter: writer}

			path := req.URL.Path
			if route := mux.CurrentRoute(req); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}

			defer func() {
				appMetrics.HTTPRequestDuration.
					WithLabelValues(path, req.Method, strconv.Itoa(srw.Status())).
					Observe(time.Since(start).Seconds())
			}()

			inner.ServeHTTP(srw, req)
		})
	}
}
