package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"audiobio/internal/config"
	"audiobio/internal/domain/dto"
	"audiobio/internal/infra/logger"
)

// WhisperTranscriptionService sends recordings to the OpenAI audio
// transcription endpoint and returns the transcribed text.
type WhisperTranscriptionService struct {
	Logger     *logger.Logger
	HttpClient *http.Client
}

func NewWhisperTranscriptionService(logger *logger.Logger, httpClient *http.Client) *WhisperTranscriptionService {
	return &WhisperTranscriptionService{Logger: logger, HttpClient: httpClient}
}

func (th *WhisperTranscriptionService) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	apiKey := config.GetEnv("OPENAI_API_KEY")
	baseURL := config.GetEnvDefault("OPENAI_API_BASE_URL", "https://api.openai.com/v1")
	model := config.GetEnvDefault("TRANSCRIPTION_MODEL", "whisper-1")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("model", model); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to build transcription payload: %s", err.Error()))
		return "", err
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to build transcription payload: %s", err.Error()))
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to read audio for transcription: %s", err.Error()))
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := th.HttpClient.Do(req)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to send transcription request: %s", err.Error()))
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to read transcription response body: %s", err.Error()))
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		th.Logger.Error(fmt.Sprintf("Transcription API returned status %d: %s", resp.StatusCode, string(respBody)))
		return "", fmt.Errorf("transcription API returned status %d", resp.StatusCode)
	}

	var transcription dto.TranscriptionResponse
	if err := json.Unmarshal(respBody, &transcription); err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to unmarshal transcription response: %s", err.Error()))
		return "", fmt.Errorf("failed to unmarshal transcription response: %w", err)
	}

	return transcription.Text, nil
}
