package keywords

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
)

const embeddingModelName = "sentence-transformers/all-MiniLM-L6-v2"

// Embedder turns texts into dense vectors. The production implementation
// wraps a hugot MiniLM session; tests substitute a deterministic fake.
type Embedder interface {
	Embed(texts []string) ([][]float32, error)
}

var (
	embedderInstance Embedder
	embedderErr      error
	embedderOnce     sync.Once
)

type hugotEmbedder struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
	mu       sync.Mutex
}

// GetEmbedder lazily initializes the process-wide embedding model. The
// model downloads on first use and is read-only after load, shared across
// all concurrent pipelines.
func GetEmbedder() (Embedder, error) {
	embedderOnce.Do(func() {
		modelDir := os.Getenv("EMBEDDING_MODEL_DIR")
		if modelDir == "" {
			modelDir = "./models"
		}

		if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
			embedderErr = fmt.Errorf("[Embedder] failed to create model directory: %w", err)
			return
		}

		modelPath := filepath.Join(modelDir, filepath.Base(embeddingModelName))
		if _, err := os.Stat(modelPath); os.IsNotExist(err) {
			slog.Info("[Embedder] Model not found, downloading...",
				slog.String("model", embeddingModelName))
			downloaded, err := hugot.DownloadModel(embeddingModelName, modelDir, hugot.NewDownloadOptions())
			if err != nil {
				embedderErr = fmt.Errorf("[Embedder] failed to download embedding model: %w", err)
				return
			}
			modelPath = downloaded
			slog.Info("[Embedder] Model downloaded successfully", slog.String("path", modelPath))
		} else {
			slog.Info("[Embedder] Using existing model", slog.String("path", modelPath))
		}

		session, err := hugot.NewORTSession()
		if err != nil {
			embedderErr = fmt.Errorf("[Embedder] failed to initialize hugot session: %w", err)
			return
		}

		config := hugot.FeatureExtractionConfig{
			ModelPath: modelPath,
			Name:      "keywordEmbeddingPipeline",
		}
		pipeline, err := hugot.NewPipeline(session, config)
		if err != nil {
			session.Destroy()
			embedderErr = fmt.Errorf("[Embedder] failed to initialize embedding pipeline: %w", err)
			return
		}

		embedderInstance = &hugotEmbedder{session: session, pipeline: pipeline}
	})

	return embedderInstance, embedderErr
}

func (h *hugotEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	// ONNX runtime sessions are not safe for concurrent RunPipeline calls.
	h.mu.Lock()
	defer h.mu.Unlock()

	output, err := h.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("[Embedder] embedding run failed: %w", err)
	}
	return output.Embeddings, nil
}
