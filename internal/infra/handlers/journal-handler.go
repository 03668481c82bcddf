package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"audiobio/internal/common"
	"audiobio/internal/domain/dto"
	Iservices "audiobio/internal/domain/interfaces/services"
	"audiobio/internal/infra/logger"
	"audiobio/internal/infra/provider"
	"audiobio/internal/infra/services"
	"audiobio/internal/middleware"
	"audiobio/internal/util"
)

type JournalHandlers struct {
	Logger         *logger.Logger
	JournalService *services.JournalService
	Storage        provider.IRecordingStorage
	Transcriber    Iservices.ITranscriptionService
}

func NewJournalHandlers(logger *logger.Logger, journalService *services.JournalService, storage provider.IRecordingStorage, transcriber Iservices.ITranscriptionService) *JournalHandlers {
	return &JournalHandlers{Logger: logger, JournalService: journalService, Storage: storage, Transcriber: transcriber}
}

// ProgressTimeToday returns the total seconds recorded today.
func (th *JournalHandlers) ProgressTimeToday(w http.ResponseWriter, r *http.Request) {
	manager, ok := th.managerFor(w, r, "")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.ProgressTimeResponse{ProgressTime: manager.ProgressTime("")})
}

// Streaks returns one record per calendar day of the requested month,
// including days with no recordings.
func (th *JournalHandlers) Streaks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	month, errM := strconv.Atoi(vars["month"])
	year, errY := strconv.Atoi(vars["year"])
	if errM != nil || errY != nil {
		http.Error(w, "month and year must be numeric", http.StatusBadRequest)
		return
	}

	manager, ok := th.managerFor(w, r, "")
	if !ok {
		return
	}

	streaks, err := manager.MonthStreaks(month, year)
	if err != nil {
		if errors.Is(err, common.ErrInvalidDate) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		th.Logger.Error(fmt.Sprintf("Failed to compute streaks: %s", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, streaks)
}

// AllJournals lists every day bundle, newest day first.
func (th *JournalHandlers) AllJournals(w http.ResponseWriter, r *http.Request) {
	manager, ok := th.managerFor(w, r, "")
	if !ok {
		return
	}

	journals := manager.AllJournals()
	sort.Slice(journals, func(i, j int) bool {
		a, errA := util.ParseKey(journals[i].Date)
		b, errB := util.ParseKey(journals[j].Date)
		if errA != nil || errB != nil {
			return journals[i].Date > journals[j].Date
		}
		return a.After(b)
	})
	writeJSON(w, http.StatusOK, journals)
}

// JournalEntriesToday returns today's ordered transcription list.
func (th *JournalHandlers) JournalEntriesToday(w http.ResponseWriter, r *http.Request) {
	manager, ok := th.managerFor(w, r, "")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.JournalEntriesResponse{Transcripts: manager.EntriesForDay("")})
}

// DeleteJournal removes the whole bundle for the date given as numeric
// path segments. Deleting a day that has no bundle still succeeds.
func (th *JournalHandlers) DeleteJournal(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	day, errD := strconv.Atoi(vars["day"])
	month, errM := strconv.Atoi(vars["month"])
	year, errY := strconv.Atoi(vars["year"])
	if errD != nil || errM != nil || errY != nil {
		http.Error(w, "day, month and year must be numeric", http.StatusBadRequest)
		return
	}

	dateKey, err := util.CanonicalKey(day, month, year)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	manager, ok := th.managerFor(w, r, dateKey)
	if !ok {
		return
	}

	if err := manager.DeleteDay(r.Context(), dateKey); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to delete journal day %s: %s", dateKey, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.DeleteStatus{Status: "success"})
}

// managerFor builds a journal manager for the authenticated user on
// this request, writing the error response itself on failure.
func (th *JournalHandlers) managerFor(w http.ResponseWriter, r *http.Request, referenceDate string) (*services.JournalManager, bool) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
		return nil, false
	}
	manager, err := th.JournalService.ManagerFor(user, referenceDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return manager, true
}
