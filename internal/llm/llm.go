// Package llm generates alternative-use content for items.
package llm

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"

	"github.com/altusecase/altuse-server/internal/domain"
)

// GeneratedUse is a single alternative use produced by the model.
type GeneratedUse struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Difficulty    string `json:"difficulty"`
	AffiliateLink string `json:"affiliate_link"`
}

// GeneratedContent is the full content package for one item.
type GeneratedContent struct {
	Uses           []GeneratedUse `json:"uses"`
	Categories     []string       `json:"categories"`
	Tags           []string       `json:"tags"`
	SEOTitle       string         `json:"seo_title"`
	SEODescription string         `json:"seo_description"`
}

// Generator produces alternative-use content for an item name.
type Generator interface {
	GenerateUses(ctx context.Context, itemName string) (*GeneratedContent, error)
}

// AffiliateSearchLink builds an Amazon search link for a product query.
func AffiliateSearchLink(query string) string {
	return "https://www.amazon.com/s?k=" + url.QueryEscape(query)
}

// Fallback returns synthetic placeholder content for an item when
// generation or parsing fails. The item still gets a complete page;
// the content can be regenerated later.
func Fallback(itemName string) *GeneratedContent {
	difficulties := []string{
		string(domain.DifficultyEasy),
		string(domain.DifficultyMedium),
		string(domain.DifficultyHard),
	}

	uses := make([]GeneratedUse, 0, 3)
	for i := 1; i <= 3; i++ {
		uses = append(uses, GeneratedUse{
			Title:         fmt.Sprintf("Creative Use #%d for %s", i, itemName),
			Description:   fmt.Sprintf("An inventive way to repurpose %s around the home. Check back soon for the full details of this alternative use.", itemName),
			Difficulty:    difficulties[rand.Intn(len(difficulties))],
			AffiliateLink: AffiliateSearchLink(itemName),
		})
	}

	return &GeneratedContent{
		Uses:           uses,
		Categories:     []string{"DIY"},
		Tags:           []string{"DIY", "Creative Ideas"},
		SEOTitle:       fmt.Sprintf("Alternative Uses for %s", itemName),
		SEODescription: fmt.Sprintf("Discover creative alternative uses for %s. Practical ideas for repurposing, upcycling, and getting more out of everyday items.", itemName),
	}
}
