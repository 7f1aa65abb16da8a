package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/uyouii/score-predictor/utils"
	"go.uber.org/zap"
)

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests, recoverPanics)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/", s.handleForm).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/predict", s.handlePredict).Methods(http.MethodPost)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With(zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r.WithContext(utils.WithLogger(r.Context(), logger)))
		logger.Debug("request served", zap.Duration("elapsed", time.Since(start)))
	})
}

func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				utils.GetLogger(r.Context()).Error("recover panic error!", zap.Any("err", err),
					zap.String("panic info", utils.GetPanicInfo()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
