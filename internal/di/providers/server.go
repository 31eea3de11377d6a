package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/altusecase/altuse-server/internal/api"
	"github.com/altusecase/altuse-server/internal/config"
	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	// Get all services
	itemService := do.MustInvoke[*service.ItemService](i)
	useService := do.MustInvoke[*service.UseService](i)
	categoryService := do.MustInvoke[*service.CategoryService](i)
	tagService := do.MustInvoke[*service.TagService](i)
	suggestionService := do.MustInvoke[*service.SuggestionService](i)
	adsService := do.MustInvoke[*service.AdsService](i)
	searchService := do.MustInvoke[*service.SearchService](i)

	services := &api.Services{
		Item:       itemService,
		Use:        useService,
		Category:   categoryService,
		Tag:        tagService,
		Suggestion: suggestionService,
		Ads:        adsService,
		Search:     searchService,
	}

	handler := api.NewServer(cfg, services, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}
