// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/peek-cli/peek/color"
	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	// Options lists the accepted values of an enumerated string field.
	Options []string
}

// Accepts reports whether v is a valid value for an enumerated field. Other fields accept anything.
func (f *Field) Accepts(v string) bool {
	return len(f.Options) == 0 || lo.Contains(f.Options, v)
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string   `json:"type"`
		Options     []string `json:"options,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Options:     f.Options,
	})
}

// typeName returns the Go type of the default value.
func (f *Field) typeName() string {
	if f.Value == nil {
		return "unknown"
	}
	return reflect.TypeOf(f.Value).String()
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string, options ...string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc, Options: options}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.CatalogURL, constant.DefaultCatalogURL, "URL of the JSON feed listing the media items to preview")
	register(key.CatalogCacheTTL, 60, "Minutes a fetched catalog is served from the local cache.\nSet to 0 to always fetch")
	register(key.CatalogTimeout, 30, "Timeout in seconds for a single catalog request")
	register(key.NetworkTLSFingerprint, false, "Fetch the catalog through a transport presenting a browser TLS fingerprint")
	register(key.PreviewHoverDelay, 500, "Milliseconds the pointer must rest on an item before its preview starts")
	register(key.PreviewInput, "auto", "Input surface. touch disables hover previews", "auto", "pointer", "touch")
	register(key.PreviewMode, "interactive", "Preview mode. static renders the grid without playback", "interactive", "static")
	register(key.PreviewStartMuted, true, "Start previews muted")
	register(key.PreviewSeekStep, 5, "Seconds moved by a single seek key press")
	register(key.Player, "mpv", "Media player used to render previews", "mpv")
	register(key.SearchShowQuerySuggestions, true, "Suggest previously used catalog filters")
	register(key.IconsVariant, "plain", "Icons variant. nerd requires a nerd font", "emoji", "plain", "squares", "nerd")
	register(key.TUIColumns, 3, "Number of grid columns")
	register(key.TUIShowURLs, false, "Show media URLs under grid items")
	register(key.TUINotifications, true, "Show preview lifecycle notifications in the status line")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Log level, from least to most verbose", "panic", "fatal", "error", "warn", "info", "debug", "trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check if a new version is available after printing help or version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"join":     strings.Join,
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Options }}
{{ blue "Options:" }} {{ join .Options ", " }}{{ end }}`))
