package config

import (
	"maps"
	"time"

	"niri-workspaces/pkg/core"
)

const (
	// IconPlaceholder is replaced by the resolved glyph in window icon formats.
	IconPlaceholder = "{icon}"
	// LabelPlaceholder is replaced by the workspace label in workspace formats.
	LabelPlaceholder = "{label}"

	DefaultFormat          = IconPlaceholder
	DefaultFocusedFormat   = IconPlaceholder
	DefaultUrgentFormat    = IconPlaceholder
	DefaultWorkspaceFormat = LabelPlaceholder

	DefaultReconnectDelay = time.Second
)

// UserFormats is the window-icon-format block of the config file.
type UserFormats struct {
	Focused *string `json:"focused" toml:"focused" yaml:"focused"`
	Urgent  *string `json:"urgent"  toml:"urgent"  yaml:"urgent"`
	Default *string `json:"default" toml:"default" yaml:"default"`
}

// UserWorkspaceFormats is the workspace-format block of the config file.
type UserWorkspaceFormats struct {
	Focused *string `json:"focused" toml:"focused" yaml:"focused"`
	Urgent  *string `json:"urgent"  toml:"urgent"  yaml:"urgent"`
	Active  *string `json:"active"  toml:"active"  yaml:"active"`
	Default *string `json:"default" toml:"default" yaml:"default"`
}

type UserReconnect struct {
	Attempts int    `json:"attempts" toml:"attempts" yaml:"attempts"`
	Delay    string `json:"delay"    toml:"delay"    yaml:"delay"`
}

// UserConfig is the configuration document as written by the user. Every
// field is optional.
type UserConfig struct {
	WindowIcons       map[string]string     `json:"window-icons"        toml:"window-icons"        yaml:"window-icons"`
	WindowIconDefault *string               `json:"window-icon-default" toml:"window-icon-default" yaml:"window-icon-default"`
	WindowIconFormat  *UserFormats          `json:"window-icon-format"  toml:"window-icon-format"  yaml:"window-icon-format"`
	WorkspaceFormat   *UserWorkspaceFormats `json:"workspace-format"    toml:"workspace-format"    yaml:"workspace-format"`
	Socket            string                `json:"socket"              toml:"socket"              yaml:"socket"`
	Reconnect         *UserReconnect        `json:"reconnect"           toml:"reconnect"           yaml:"reconnect"`
	NotifyOnFailure   bool                  `json:"notify-on-failure"   toml:"notify-on-failure"   yaml:"notify-on-failure"`
	NotifyCommand     string                `json:"notify-command"      toml:"notify-command"      yaml:"notify-command"`

	// UnknownKeys lists keys of the document that were ignored.
	UnknownKeys []string `json:"-" toml:"-" yaml:"-"`
}

// Formats holds the effective window icon templates.
type Formats struct {
	Focused string `json:"focused" yaml:"focused"`
	Urgent  string `json:"urgent"  yaml:"urgent"`
	Default string `json:"default" yaml:"default"`
}

// WorkspaceFormats holds the effective workspace label templates used by
// the waybar output.
type WorkspaceFormats struct {
	Focused string `json:"focused" yaml:"focused"`
	Urgent  string `json:"urgent"  yaml:"urgent"`
	Active  string `json:"active"  yaml:"active"`
	Default string `json:"default" yaml:"default"`
}

// Reconnect configures reconnection after a failed session. Zero attempts
// means fail fast.
type Reconnect struct {
	Attempts int
	Delay    time.Duration
}

// Config is the effective configuration: built-in defaults overlaid with the
// user's settings.
type Config struct {
	IconDefault      string
	Formats          Formats
	Icons            map[string]string
	WorkspaceFormats WorkspaceFormats
	Socket           string
	Reconnect        Reconnect
	NotifyOnFailure  bool
	NotifyCommand    string
}

// Default returns the effective configuration with no user overrides.
func Default(log core.Logger) Config {
	return FromUser(&UserConfig{}, log)
}

// FromUser merges the user's configuration over the built-in defaults and
// logs any validation warnings. It never fails.
func FromUser(uc *UserConfig, log core.Logger) Config {
	if uc == nil {
		uc = &UserConfig{}
	}

	cfg := Config{
		IconDefault:      deref(uc.WindowIconDefault, ""),
		Formats:          mergeFormats(uc.WindowIconFormat),
		Icons:            MergeIcons(uc.WindowIcons),
		WorkspaceFormats: mergeWorkspaceFormats(uc.WorkspaceFormat),
		Socket:           uc.Socket,
		Reconnect:        mergeReconnect(uc.Reconnect, log),
		NotifyOnFailure:  uc.NotifyOnFailure,
		NotifyCommand:    uc.NotifyCommand,
	}

	for _, k := range uc.UnknownKeys {
		log.Warn("Unknown config key ignored", "field", k)
	}
	for _, w := range cfg.Validate() {
		log.Warn(w.Message, "field", w.Field)
	}

	log.Debug("Configuration merged",
		"icon_count", len(cfg.Icons),
		"user_icon_count", len(uc.WindowIcons),
		"icon_default", cfg.IconDefault)

	return cfg
}

// MergeIcons overlays user entries on the built-in table. User keys are
// stored exactly as given.
func MergeIcons(user map[string]string) map[string]string {
	icons := make(map[string]string, len(DefaultIcons)+len(user))
	for _, entry := range DefaultIcons {
		icons[entry.AppID] = entry.Icon
	}
	for k, v := range user {
		icons[k] = v
	}
	return icons
}

func mergeFormats(uf *UserFormats) Formats {
	if uf == nil {
		uf = &UserFormats{}
	}
	return Formats{
		Focused: deref(uf.Focused, DefaultFocusedFormat),
		Urgent:  deref(uf.Urgent, DefaultUrgentFormat),
		Default: deref(uf.Default, DefaultFormat),
	}
}

func mergeWorkspaceFormats(uf *UserWorkspaceFormats) WorkspaceFormats {
	if uf == nil {
		uf = &UserWorkspaceFormats{}
	}
	return WorkspaceFormats{
		Focused: deref(uf.Focused, DefaultWorkspaceFormat),
		Urgent:  deref(uf.Urgent, DefaultWorkspaceFormat),
		Active:  deref(uf.Active, DefaultWorkspaceFormat),
		Default: deref(uf.Default, DefaultWorkspaceFormat),
	}
}

func mergeReconnect(ur *UserReconnect, log core.Logger) Reconnect {
	if ur == nil || ur.Attempts <= 0 {
		return Reconnect{}
	}
	r := Reconnect{Attempts: ur.Attempts, Delay: DefaultReconnectDelay}
	if ur.Delay != "" {
		d, err := time.ParseDuration(ur.Delay)
		if err != nil || d < 0 {
			log.Warn("reconnect.delay is not a valid duration, using default",
				"value", ur.Delay,
				"default", DefaultReconnectDelay.String())
		} else {
			r.Delay = d
		}
	}
	return r
}

// Clone returns a copy that shares no memory with c.
func (c Config) Clone() Config {
	c.Icons = maps.Clone(c.Icons)
	return c
}

func deref(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
