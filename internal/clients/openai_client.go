package clients

import (
	"log/slog"
	"os"
	"sync"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	aiClientInstance *AIClient
	aiClientOnce     sync.Once
)

type AIClient struct {
	Client *openai.Client
}

func GetAIClient() *AIClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Error("[AIClient] Missing OPENAI_API_KEY in environment variables")
		panic("[AIClient] Missing OPENAI_API_KEY in environment variables")
	}
	aiClientOnce.Do(func() {
		aiClientInstance = &AIClient{
			Client: openai.NewClient(option.WithAPIKey(apiKey)),
		}
		slog.Info("[AIClient] OpenAI client initialized")
	})
	return aiClientInstance
}
