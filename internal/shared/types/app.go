package types

// Size represents default window dimensions for an application
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppInfo describes a registered application
type AppInfo struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Icon         string                 `json:"icon"`
	Component    string                 `json:"component"` // frontend component identifier
	DefaultSize  Size                   `json:"default_size"`
	DefaultProps map[string]interface{} `json:"default_props,omitempty"`
}

// RegistryStats contains app registry statistics
type RegistryStats struct {
	TotalApps  int `json:"total_apps"`
	Extensions int `json:"extensions"`
}
