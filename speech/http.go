package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPSpeech synthesizes through a hosted neural TTS endpoint that accepts
// a JSON request and returns base64 audio.
type HTTPSpeech struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// NewHTTPSpeech creates a provider for the given endpoint.
func NewHTTPSpeech(endpoint, apiKey string) *HTTPSpeech {
	return &HTTPSpeech{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSpeech) Name() string { return "http" }

type httpTTSRequest struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Voice    string  `json:"voice"`
	Speed    float64 `json:"speed"`
	Pitch    float64 `json:"pitch"`
}

type httpTTSResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"` // base64 audio
	MIME    string `json:"mime"`
}

// Synthesize posts the request and decodes the audio payload.
func (s *HTTPSpeech) Synthesize(ctx context.Context, req Request) (Audio, error) {
	voice := VoiceFor(req.Language)
	body, err := json.Marshal(httpTTSRequest{
		Text:     req.Text,
		Language: Tag(req.Language),
		Voice:    voice,
		Speed:    req.Rate,
		Pitch:    req.Pitch,
	})
	if err != nil {
		return Audio{}, fmt.Errorf("speech: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Audio{}, fmt.Errorf("speech: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return Audio{}, fmt.Errorf("speech: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Audio{}, fmt.Errorf("speech: endpoint returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return Audio{}, fmt.Errorf("speech: read response: %w", err)
	}

	var apiResp httpTTSResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return Audio{}, fmt.Errorf("speech: decode response: %w", err)
	}
	if apiResp.Code != 0 {
		return Audio{}, fmt.Errorf("speech: endpoint error %d: %s", apiResp.Code, apiResp.Message)
	}

	audio, err := base64.StdEncoding.DecodeString(apiResp.Data)
	if err != nil {
		return Audio{}, fmt.Errorf("speech: decode audio: %w", err)
	}
	if len(audio) == 0 {
		return Audio{}, fmt.Errorf("speech: endpoint returned empty audio")
	}

	mime := apiResp.MIME
	if mime == "" {
		mime = "audio/mpeg"
	}
	return Audio{
		Data:     audio,
		MIME:     mime,
		Voice:    voice,
		Provider: s.Name(),
	}, nil
}
