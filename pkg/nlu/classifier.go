package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Analysis is the combined output of the intent and emotion models.
type Analysis struct {
	Intent     string  `json:"intent"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// Classifier runs two pretrained text-classification checkpoints through
// the HF Inference API: one for intent, one for emotion. It performs no
// retries; a failed call is the caller's cue to use the keyword fallback.
type Classifier struct {
	ApiKey       string
	IntentModel  string
	EmotionModel string
	Client       *http.Client
}

func NewClassifier(apiKey, intentModel, emotionModel string) *Classifier {
	return &Classifier{
		ApiKey:       apiKey,
		IntentModel:  intentModel,
		EmotionModel: emotionModel,
		Client:       &http.Client{Timeout: 30 * time.Second},
	}
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// The API returns label candidates sorted by score, nested one level:
// [[{"label":"joy","score":0.98}, ...]]
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyze classifies the text with both models and averages their scores,
// matching how the upstream models were combined originally.
func (c *Classifier) Analyze(ctx context.Context, text string) (*Analysis, error) {
	intent, err := c.classify(ctx, c.IntentModel, text)
	if err != nil {
		return nil, err
	}
	emotion, err := c.classify(ctx, c.EmotionModel, text)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Intent:     intent.Label,
		Emotion:    emotion.Label,
		Confidence: (intent.Score + emotion.Score) / 2,
	}, nil
}

func (c *Classifier) classify(ctx context.Context, model, text string) (*labelScore, error) {
	jsonBody, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("https://api-inference.huggingface.co/models/%s", model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.ApiKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classification error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var candidates [][]labelScore
	if err := json.Unmarshal(bodyBytes, &candidates); err != nil {
		return nil, err
	}
	if len(candidates) == 0 || len(candidates[0]) == 0 {
		return nil, fmt.Errorf("classification returned no labels for model %s", model)
	}

	top := candidates[0][0]
	for _, cand := range candidates[0][1:] {
		if cand.Score > top.Score {
			top = cand
		}
	}
	return &top, nil
}
