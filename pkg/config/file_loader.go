package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"niri-workspaces/pkg/core"
)

// LoadFile reads a user configuration document. The format is chosen by
// the file extension: .json, .toml, .yaml or .yml.
func LoadFile(path string, log core.Logger) (*UserConfig, error) {
	log.Debug("Loading configuration from file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", err, "path", path)
		return nil, err
	}
	log.Debug("Config file read successfully", "size_bytes", len(data))

	uc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		log.Error("Failed to parse config file", err, "path", path)
		return nil, err
	}
	return uc, nil
}

// Parse decodes a configuration document of the given extension. Keys the
// document does not define are collected in UnknownKeys and otherwise
// ignored.
func Parse(data []byte, ext string) (*UserConfig, error) {
	var uc UserConfig
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &uc); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err == nil {
			uc.UnknownKeys = unknownKeys(raw)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &uc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
		for _, key := range md.Undecoded() {
			uc.UnknownKeys = append(uc.UnknownKeys, key.String())
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &uc); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
		var raw map[string]interface{}
		if err := yaml.Unmarshal(data, &raw); err == nil {
			uc.UnknownKeys = unknownKeys(raw)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return &uc, nil
}

// documentKeys are the top-level keys UserConfig decodes.
var documentKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(UserConfig{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

func unknownKeys[V any](raw map[string]V) []string {
	var unknown []string
	for k := range raw {
		if !documentKeys[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}
