package llm

import (
	"encoding/json/v2"
	"fmt"
	"strings"

	"github.com/altusecase/altuse-server/internal/domain"
)

// extractJSONObject extracts a JSON object from text that may contain
// markdown code fences or surrounding prose. Returns the extracted JSON
// string or an error.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return text[start : end+1], nil
}

// ParseContent parses a raw model response into normalized content.
// It tolerates code fences and prose around the JSON object, clamps
// unknown difficulties, filters categories against the known set, and
// fills in missing affiliate links. An empty use list is an error; the
// caller falls back to synthetic content.
func ParseContent(raw, itemName string) (*GeneratedContent, error) {
	jsonStr, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var content GeneratedContent
	if err := json.Unmarshal([]byte(jsonStr), &content); err != nil {
		return nil, fmt.Errorf("parse response JSON: %w", err)
	}

	if len(content.Uses) == 0 {
		return nil, fmt.Errorf("response contains no uses")
	}

	normalize(&content, itemName)
	return &content, nil
}

// normalize enforces the content invariants in place.
func normalize(content *GeneratedContent, itemName string) {
	for i := range content.Uses {
		u := &content.Uses[i]
		u.Title = strings.TrimSpace(u.Title)
		u.Description = strings.TrimSpace(u.Description)

		if !domain.Difficulty(strings.ToLower(u.Difficulty)).Valid() {
			u.Difficulty = string(domain.DifficultyMedium)
		} else {
			u.Difficulty = strings.ToLower(u.Difficulty)
		}

		if u.AffiliateLink == "" {
			u.AffiliateLink = AffiliateSearchLink(itemName)
		}
	}

	content.Categories = filterCategories(content.Categories)
	if len(content.Categories) == 0 {
		content.Categories = []string{"DIY"}
	}

	content.Tags = dedupeNonEmpty(content.Tags)
	if len(content.Tags) == 0 {
		content.Tags = []string{"DIY", "Creative Ideas"}
	}

	if content.SEOTitle == "" {
		content.SEOTitle = fmt.Sprintf("Alternative Uses for %s", itemName)
	}
	if content.SEODescription == "" {
		content.SEODescription = fmt.Sprintf("Discover creative alternative uses for %s.", itemName)
	}
}

// filterCategories keeps only names from the default category set,
// matching case-insensitively but returning canonical names.
func filterCategories(names []string) []string {
	canonical := make(map[string]string, len(domain.DefaultCategories))
	for i := range domain.DefaultCategories {
		c := &domain.DefaultCategories[i]
		canonical[strings.ToLower(c.Name)] = c.Name
	}

	seen := make(map[string]bool)
	out := []string{}
	for _, n := range names {
		name, ok := canonical[strings.ToLower(strings.TrimSpace(n))]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// dedupeNonEmpty trims, drops empties, and removes duplicates while
// preserving order.
func dedupeNonEmpty(values []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
