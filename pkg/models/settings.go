package models

// DefaultAPIBase is used when nothing else configures the API location
const DefaultAPIBase = "http://localhost/api"

// Settings represents the application configuration
type Settings struct {
	API APISettings `yaml:"api"`
	UI  UISettings  `yaml:"ui"`
	Log LogSettings `yaml:"log"`
}

// APISettings controls how the console reaches the jobs API
type APISettings struct {
	BaseURL           string  `yaml:"base_url"`
	RequestsPerSecond float64 `yaml:"requests_per_second"` // 0 disables the limiter
	Burst             int     `yaml:"burst"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowPreview   bool `yaml:"show_preview"`
	ConfirmDelete bool `yaml:"confirm_delete"`
	Mouse         bool `yaml:"mouse"`
}

// LogSettings controls the diagnostic log
type LogSettings struct {
	File string `yaml:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		API: APISettings{
			BaseURL:           DefaultAPIBase,
			RequestsPerSecond: 0,
			Burst:             1,
		},
		UI: UISettings{
			ShowPreview:   true,
			ConfirmDelete: true,
			Mouse:         true,
		},
	}
}
