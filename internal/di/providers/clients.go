package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/altusecase/altuse-server/internal/config"
	"github.com/altusecase/altuse-server/internal/imagesearch"
	"github.com/altusecase/altuse-server/internal/llm"
	"github.com/altusecase/altuse-server/internal/logger"
)

// ProvideImageProvider provides the Pexels image search client, or nil
// when no API key is configured. Generation degrades to image-less
// items in that case.
func ProvideImageProvider(i do.Injector) (imagesearch.Provider, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Images.PexelsAPIKey == "" {
		log.Warn("PEXELS_API_KEY not set, items will be generated without images")
		return nil, nil
	}

	client := imagesearch.NewPexels(imagesearch.PexelsOpts{
		APIKey:  cfg.Images.PexelsAPIKey,
		Timeout: cfg.Images.Timeout,
	}, log.Logger)

	log.Info("Pexels image search enabled")
	return client, nil
}

// ProvideGenerator provides the Gemini content generator, or nil when
// no API key is configured (development only; Validate rejects a
// missing key elsewhere). A nil generator produces placeholder content.
func ProvideGenerator(i do.Injector) (llm.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.LLM.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, generation will use placeholder content")
		return nil, nil
	}

	gemini, err := llm.NewGemini(context.Background(), llm.GeminiOpts{
		APIKey:  cfg.LLM.GeminiAPIKey,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Gemini content generation enabled", "model", cfg.LLM.Model)
	return gemini, nil
}
