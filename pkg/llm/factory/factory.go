package factory

import (
	"fmt"

	"luma-chat-be/internal/config"
	"luma-chat-be/pkg/llm"
	"luma-chat-be/pkg/llm/azure"
	"luma-chat-be/pkg/llm/huggingface"
	"luma-chat-be/pkg/llm/ollama"
)

func NewLLMProvider(cfg *config.Config) (llm.LLMProvider, error) {
	switch cfg.Ai.LLMProvider {
	case "azure":
		return azure.NewAzureProvider(
			cfg.Azure.Endpoint,
			cfg.Azure.APIKey,
			cfg.Azure.APIVersion,
			cfg.Azure.DeploymentName,
		), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.Ai.HuggingFaceKey, "", cfg.Ai.LLMModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Ai.LLMProvider)
	}
}
