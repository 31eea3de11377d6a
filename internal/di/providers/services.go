package providers

import (
	"github.com/samber/do/v2"

	"github.com/altusecase/altuse-server/internal/imagesearch"
	"github.com/altusecase/altuse-server/internal/llm"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/service"
)

// ProvideItemService provides the item generation and browsing service.
func ProvideItemService(i do.Injector) (*service.ItemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	images := do.MustInvoke[imagesearch.Provider](i)
	generator := do.MustInvoke[llm.Generator](i)
	searchSvc := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	indexer := service.NewIndexer(searchSvc)
	return service.NewItemService(storeHandle.Store, images, generator, indexer, log), nil
}

// ProvideUseService provides the use read and voting service.
func ProvideUseService(i do.Injector) (*service.UseService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewUseService(storeHandle.Store, log), nil
}

// ProvideCategoryService provides the category browsing service.
func ProvideCategoryService(i do.Injector) (*service.CategoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewCategoryService(storeHandle.Store, log), nil
}

// ProvideTagService provides the tag browsing service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewTagService(storeHandle.Store, log), nil
}

// ProvideSuggestionService provides the suggestion review service.
func ProvideSuggestionService(i do.Injector) (*service.SuggestionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewSuggestionService(storeHandle.Store, log), nil
}

// ProvideAdsService provides the ad settings service.
func ProvideAdsService(i do.Injector) (*service.AdsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewAdsService(storeHandle.Store, log), nil
}
