// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog Source - these keys locate and bound the remote feed of media items.
const (
	CatalogURL      = "catalog.url"
	CatalogCacheTTL = "catalog.cache_ttl"
	CatalogTimeout  = "catalog.timeout"
)

// Network Transport - these keys tune the HTTP client used for catalog retrieval.
const (
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Preview Lifecycle - these keys govern hover-intent detection and inline playback.
const (
	PreviewHoverDelay = "preview.hover_delay"
	PreviewInput      = "preview.input"
	PreviewMode       = "preview.mode"
	PreviewStartMuted = "preview.start_muted"
	PreviewSeekStep   = "preview.seek_step"
)

// Media Playback - these keys select the external backend driving previews.
const (
	Player = "player.default"
)

// Search Interaction - these keys define the UX parameters for catalog filtering.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the grid host's layout and feedback.
const (
	TUIColumns       = "tui.columns"
	TUIShowURLs      = "tui.show_urls"
	TUINotifications = "tui.notifications"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
