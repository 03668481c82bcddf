package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"audiobio/internal/infra/handlers"
)

type Routes struct {
	Mux             *mux.Router
	AuthHandlers    *handlers.AuthHandlers
	JournalHandlers *handlers.JournalHandlers
	AuthMiddleware  func(http.Handler) http.Handler
}

func NewRoutes(mux *mux.Router, authHandlers *handlers.AuthHandlers, journalHandlers *handlers.JournalHandlers, authMiddleware func(http.Handler) http.Handler) *Routes {
	return &Routes{mux, authHandlers, journalHandlers, authMiddleware}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/signup", r.AuthHandlers.Signup).Methods(http.MethodPost)
	r.Mux.HandleFunc("/login", r.AuthHandlers.Login).Methods(http.MethodPost)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)

	protected := r.Mux.PathPrefix("/").Subrouter()
	protected.Use(r.AuthMiddleware)

	protected.HandleFunc("/upload", r.JournalHandlers.Upload).Methods(http.MethodPost)
	protected.HandleFunc("/progress_time_today", r.JournalHandlers.ProgressTimeToday).Methods(http.MethodGet)
	protected.HandleFunc("/streaks/{month}/{year}", r.JournalHandlers.Streaks).Methods(http.MethodGet)
	protected.HandleFunc("/all_journals", r.JournalHandlers.AllJournals).Methods(http.MethodGet)
	protected.HandleFunc("/journal_entries_today", r.JournalHandlers.JournalEntriesToday).Methods(http.MethodGet)
	protected.HandleFunc("/journal/{day}/{month}/{year}", r.JournalHandlers.DeleteJournal).Methods(http.MethodDelete)
}
