package llm

import (
	"fmt"
	"strings"

	"github.com/altusecase/altuse-server/internal/domain"
)

const promptTemplate = `You are a creative writer for a website about alternative uses for everyday items.

Generate alternative uses for: %s

Respond in JSON format with these fields:
- uses: an array of 10 to 15 alternative uses, each with:
  - title: a short, catchy name for the use
  - description: 40 to 45 words explaining how to do it and why it works
  - difficulty: one of "easy", "medium", "hard"
  - affiliate_link: an Amazon search URL for a product that helps with this use, in the form https://www.amazon.com/s?k=search+terms
- categories: 1 to 3 category names, chosen ONLY from this list: %s
- tags: 3 to 4 short topical tags
- seo_title: a page title under 60 characters
- seo_description: a meta description under 160 characters

Example response:
{"uses": [{"title": "Emergency Hem Fix", "description": "Fold the hem to the desired length and press a strip of duct tape along the inside edge. The bond holds through a full day of wear and peels away cleanly afterwards, making it ideal for travel and last-minute wardrobe repairs.", "difficulty": "easy", "affiliate_link": "https://www.amazon.com/s?k=duct+tape"}], "categories": ["DIY", "Household"], "tags": ["Quick Fixes", "Clothing", "DIY"], "seo_title": "15 Brilliant Alternative Uses for Duct Tape", "seo_description": "From hemming trousers to patching tents, discover 15 clever ways to use duct tape you never thought of."}

Respond ONLY with the JSON object, no markdown or other text.`

// BuildPrompt renders the generation prompt for an item name.
func BuildPrompt(itemName string) string {
	return fmt.Sprintf(promptTemplate, itemName, strings.Join(domain.DefaultCategoryNames(), ", "))
}
