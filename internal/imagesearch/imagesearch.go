// Package imagesearch finds representative photos for items.
package imagesearch

import "context"

// Result is a photo chosen for an item, with its attribution line.
type Result struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Provider searches a stock photo service for an item image.
// A nil Result with a nil error means the search ran but nothing
// matched; callers treat both errors and empty results as "no image"
// since image lookup is best-effort.
type Provider interface {
	FindImage(ctx context.Context, query string) (*Result, error)
}
