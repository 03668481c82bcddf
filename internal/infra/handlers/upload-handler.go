package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"audiobio/internal/domain/dto"
	"audiobio/internal/infra/provider"
)

const maxUploadBytes = 32 << 20

// Upload receives a multipart audio recording, stores the object,
// appends a journal entry for today and attaches the transcription to
// the new entry.
func (th *JournalHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Error to process multipart form", http.StatusBadRequest)
		return
	}

	lengthField := r.FormValue("length_in_seconds")
	if lengthField == "" {
		http.Error(w, "No length of audio file provided", http.StatusBadRequest)
		return
	}
	lengthInSeconds, err := strconv.ParseFloat(lengthField, 64)
	if err != nil {
		http.Error(w, "Invalid length of audio file", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "No audio file provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "audio/") {
		http.Error(w, "Invalid file type", http.StatusBadRequest)
		return
	}

	// The recording is needed twice: once for object storage and once
	// for the transcription call.
	audioContent, err := io.ReadAll(file)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to read uploaded audio: %s", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	key := provider.NewRecordingKey(header.Filename)
	if err := th.Storage.Upload(r.Context(), key, bytes.NewReader(audioContent), contentType); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to store recording %s: %s", key, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	manager, ok := th.managerFor(w, r, "")
	if !ok {
		return
	}

	_, entry, err := manager.AppendEntry(r.Context(), key, lengthInSeconds)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to append journal entry: %s", err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	transcription, err := th.Transcriber.Transcribe(r.Context(), key, bytes.NewReader(audioContent))
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to transcribe %s: %s", key, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := manager.SetTranscription(r.Context(), entry.ID, transcription); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to save transcription for entry %s: %s", entry.ID, err.Error()))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.UploadResponse{Filename: key})
}
