package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/altusecase/altuse-server/internal/config"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/search"
	"github.com/altusecase/altuse-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Store.DataPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideSearchService provides the search service and wires the index
// into the store's write path.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(storeHandle.Store, indexHandle.SearchIndex, log)

	// Item writes update the index automatically.
	storeHandle.SetSearchIndexer(service.NewIndexer(svc))

	// Catch up after a restored database or deleted index directory.
	if err := svc.SyncIndexOnStartup(context.Background()); err != nil {
		log.Warn("Search index startup sync failed", "error", err)
	}

	return svc, nil
}
