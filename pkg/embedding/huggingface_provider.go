package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HuggingFaceProvider runs a sentence-transformers checkpoint through the
// HF Inference API feature-extraction pipeline. The default model matches
// the one the knowledge base was authored against.
type HuggingFaceProvider struct {
	ApiKey string
	Model  string
	Client *http.Client
}

func NewHuggingFaceProvider(apiKey string, model string) Provider {
	if model == "" {
		model = "sentence-transformers/all-MiniLM-L6-v2"
	}
	return &HuggingFaceProvider{
		ApiKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

type hfFeatureRequest struct {
	Inputs []string `json:"inputs"`
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	reqBody := hfFeatureRequest{Inputs: []string{text}}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://api-inference.huggingface.co/pipeline/feature-extraction/%s",
		p.Model,
	)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.ApiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.ApiKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface embedding error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	// Sentence-level pipeline returns one vector per input
	var vectors [][]float32
	if err := json.Unmarshal(bodyBytes, &vectors); err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("huggingface embedding returned no vectors")
	}

	return normalizeVector(vectors[0]), nil
}
