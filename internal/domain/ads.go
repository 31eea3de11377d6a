package domain

import "time"

// Well-known ad setting keys. The settings table is generic key/value so
// new placements can be added without a migration, but handlers only
// recognise the keys below.
const (
	AdKeyHeader  = "header_ad"
	AdKeySidebar = "sidebar_ad"
	AdKeyInline  = "inline_ad"
	AdKeyFooter  = "footer_ad"
)

// AdSetting is a single ad placement configuration. SettingValue holds
// the raw snippet or slot identifier for the placement and is served to
// the frontend verbatim when IsEnabled is true.
type AdSetting struct {
	ID           string    `json:"id"`
	SettingKey   string    `json:"setting_key"`
	SettingValue string    `json:"setting_value"`
	IsEnabled    bool      `json:"is_enabled"`
	UpdatedAt    time.Time `json:"updated_at"`
}
