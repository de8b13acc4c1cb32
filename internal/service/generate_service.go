package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	config "github.com/maheshrc27/postcal/configs"
	"github.com/maheshrc27/postcal/internal/transfer"
)

// GenerateService drafts post content with a local text-generation model.
type GenerateService interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type generateService struct {
	cfg    config.TextGen
	client *http.Client
}

func NewGenerateService(cfg config.Config) GenerateService {
	return &generateService{
		cfg:    cfg.TextGen,
		client: &http.Client{Timeout: cfg.TextGen.Timeout},
	}
}

func (s *generateService) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", validationError("prompt is required")
	}

	body, err := json.Marshal(transfer.TextGenRequest{
		Model:  s.cfg.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("%w: %v", ErrRemoteService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("%w: text generation returned %d: %s", ErrRemoteService, resp.StatusCode, strings.TrimSpace(string(msg)))
		slog.Info(err.Error())
		return "", err
	}

	// The endpoint answers with one JSON object, or a stream of them when it
	// ignores the stream flag.
	var out strings.Builder
	dec := json.NewDecoder(resp.Body)
	for {
		var chunk transfer.TextGenChunk
		if err := dec.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			slog.Info(err.Error())
			return "", fmt.Errorf("%w: decoding response: %v", ErrRemoteService, err)
		}
		if chunk.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrRemoteService, chunk.Error)
		}
		out.WriteString(chunk.Response)
		if chunk.Done {
			break
		}
	}

	return strings.TrimSpace(out.String()), nil
}
