package dto

// TranscriptionResponse mirrors the relevant part of the Whisper
// transcription API response.
type TranscriptionResponse struct {
	Text string `json:"text"`
}
