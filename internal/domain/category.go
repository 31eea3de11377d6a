package domain

// Category is static reference data grouping items by theme.
// The category set is seeded from a fixed allow-list at startup;
// the generation pipeline only ever links items to categories that
// already exist in the table.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	IconName    string `json:"icon_name,omitempty"` // Client-side icon identifier
}

// CategoryWithCount is a Category annotated with how many items link to it.
type CategoryWithCount struct {
	Category
	ItemCount int `json:"item_count"`
}

// ItemCategory is the join row linking an Item to a Category.
type ItemCategory struct {
	ItemID     string `json:"item_id"`
	CategoryID string `json:"category_id"`
}

// DefaultCategories is the fixed allow-list the content generator may
// choose from. Suggested category names outside this list are dropped.
var DefaultCategories = []Category{
	{Name: "Tech", Slug: "tech", IconName: "cpu", Description: "Alternative uses for gadgets and tech accessories."},
	{Name: "Household", Slug: "household", IconName: "home", Description: "Clever uses for household items."},
	{Name: "Food", Slug: "food", IconName: "utensils", Description: "Unexpected ways to use food items."},
	{Name: "DIY", Slug: "diy", IconName: "wrench", Description: "Creative DIY projects."},
	{Name: "Office", Slug: "office", IconName: "package", Description: "Smart uses for office supplies."},
	{Name: "Crafts", Slug: "crafts", IconName: "palette", Description: "Artistic material reuse."},
	{Name: "Car Hacks", Slug: "car-hacks", IconName: "car", Description: "Unusual vehicle uses."},
	{Name: "Camping Gear", Slug: "camping-gear", IconName: "tent", Description: "Outdoor equipment repurposing."},
	{Name: "Eco Living", Slug: "eco-living", IconName: "leaf", Description: "Sustainable reuse ideas."},
	{Name: "Fashion", Slug: "fashion", IconName: "shirt", Description: "Non-clothing uses for garments."},
	{Name: "Beauty", Slug: "beauty", IconName: "gem", Description: "Makeup product alternatives."},
	{Name: "Furniture", Slug: "furniture", IconName: "sofa", Description: "Unconventional furniture uses."},
	{Name: "Storage", Slug: "storage", IconName: "box", Description: "Innovative organization solutions."},
	{Name: "Pet Supplies", Slug: "pet-supplies", IconName: "paw-print", Description: "Repurposing pet gear."},
	{Name: "Music", Slug: "music", IconName: "music", Description: "Alternative instrument uses."},
	{Name: "Books", Slug: "books", IconName: "book-open", Description: "Creative book repurposing."},
	{Name: "Lighting", Slug: "lighting", IconName: "lightbulb", Description: "Unusual light source uses."},
	{Name: "Fitness", Slug: "fitness", IconName: "dumbbell", Description: "Non-exercise equipment uses."},
	{Name: "Construction", Slug: "construction", IconName: "cuboid", Description: "Building material alternatives."},
	{Name: "School", Slug: "school", IconName: "school", Description: "Educational supply hacks."},
	{Name: "Holiday", Slug: "holiday", IconName: "gift", Description: "Post-holiday decoration uses."},
	{Name: "Party", Slug: "party", IconName: "circle-dashed", Description: "Party supply repurposing."},
	{Name: "Shopping", Slug: "shopping", IconName: "shopping-cart", Description: "Packaging reuse ideas."},
	{Name: "Science", Slug: "science", IconName: "flask-conical", Description: "Household science hacks."},
	{Name: "Measuring", Slug: "measuring", IconName: "ruler", Description: "Measurement tool alternatives."},
	{Name: "Bicycles", Slug: "bicycles", IconName: "bike", Description: "Bike part repurposing."},
	{Name: "Tools", Slug: "tools", IconName: "hammer", Description: "Non-traditional tool uses."},
	{Name: "Chemistry", Slug: "chemistry", IconName: "flask-round", Description: "Household chemical applications."},
	{Name: "Games", Slug: "games", IconName: "gamepad-2", Description: "Game piece alternatives."},
	{Name: "Photography", Slug: "photography", IconName: "camera", Description: "Camera gear repurposing."},
	{Name: "Electronics", Slug: "electronics", IconName: "plug", Description: "Creative electronic uses."},
	{Name: "Liquids", Slug: "liquids", IconName: "droplets", Description: "Unusual liquid applications."},
}

// DefaultCategoryNames returns the names of the allow-list categories,
// in declaration order, for inclusion in generation prompts.
func DefaultCategoryNames() []string {
	names := make([]string, len(DefaultCategories))
	for i, c := range DefaultCategories {
		names[i] = c.Name
	}
	return names
}
