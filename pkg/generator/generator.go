package generator

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/replicate/replicate-go"

	"ghiblify_backend/pkg/config"
)

// DefaultPrompt istek prompt vermezse kullanılır
const DefaultPrompt = "recreate this image in the style of ghibli"

// Generator Replicate üzerindeki görsel üretim modeline giden çağrıları sarar.
// Process başında bir kez kurulur.
type Generator struct {
	client *replicate.Client
	model  string
}

func New(cfg config.ReplicateConfig) (*Generator, error) {
	client, err := replicate.NewClient(replicate.WithToken(cfg.APIToken))
	if err != nil {
		return nil, fmt.Errorf("could not create replicate client: %v", err)
	}

	return &Generator{client: client, model: cfg.Model}, nil
}

func (g *Generator) Model() string {
	return g.model
}

// Generate kaynak görseli stilize eder ve üretilen görselin URL'ini döndürür.
// Başarısız çağrılar tekrar denenmez, hata olduğu gibi yukarı taşınır.
func (g *Generator) Generate(ctx context.Context, imageURL, prompt string) (string, error) {
	if prompt == "" {
		prompt = DefaultPrompt
	}

	input := replicate.PredictionInput{
		"input_image": imageURL,
		"prompt":      prompt,
	}

	output, err := g.client.Run(ctx, g.model, input, nil)
	if err != nil {
		return "", fmt.Errorf("replicate run failed: %v", err)
	}

	return outputURL(output)
}

// outputURL model çıktısından ilk sonuç URL'ini çıkarır. Modeller tek string
// veya string listesi döndürebiliyor.
func outputURL(output replicate.PredictionOutput) (string, error) {
	switch v := output.(type) {
	case string:
		return v, nil
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				return s, nil
			}
		}
	}

	return "", fmt.Errorf("unexpected model output: %T", output)
}

// Download üretilen görseli indirir
func (g *Generator) Download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("could not download generated image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("could not download generated image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	return data, contentType, nil
}
