// Package di provides dependency injection configuration for the AltUse server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/altusecase/altuse-server/internal/config"
	"github.com/altusecase/altuse-server/internal/di/providers"
	"github.com/altusecase/altuse-server/internal/imagesearch"
	"github.com/altusecase/altuse-server/internal/llm"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideBootstrap)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// External clients
	do.Provide(injector, providers.ProvideImageProvider)
	do.Provide(injector, providers.ProvideGenerator)

	// Business services
	do.Provide(injector, providers.ProvideItemService)
	do.Provide(injector, providers.ProvideUseService)
	do.Provide(injector, providers.ProvideCategoryService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideSuggestionService)
	do.Provide(injector, providers.ProvideAdsService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.Bootstrap](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[imagesearch.Provider](injector)
	_ = do.MustInvoke[llm.Generator](injector)

	// Business services
	_ = do.MustInvoke[*service.ItemService](injector)
	_ = do.MustInvoke[*service.UseService](injector)
	_ = do.MustInvoke[*service.CategoryService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.SuggestionService](injector)
	_ = do.MustInvoke[*service.AdsService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
