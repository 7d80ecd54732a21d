package core

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/go-viper/mapstructure/v2"
)

// ResolveConfig merges a partial override over defaults and decodes the result.
//
// With schema.MergeShallow every top-level key of override replaces the default
// wholesale, so a partial nested object leaves its missing fields at zero.
// With schema.MergeDeep nested objects are merged key by key.
// No numeric validation is performed; the only error is a value whose shape
// cannot be decoded into the typed config.
func ResolveConfig(defaults schema.ScoreFunctionConfig, override map[string]any, mode schema.MergeMode) (schema.ScoreFunctionConfig, error) {
	if len(override) == 0 {
		return defaults.Clone(), nil
	}

	base, err := configToMap(defaults)
	if err != nil {
		return schema.ScoreFunctionConfig{}, err
	}

	switch mode {
	case schema.MergeDeep:
		base = deepMerge(base, override)
	case schema.MergeShallow, "":
		maps.Copy(base, override)
	default:
		return schema.ScoreFunctionConfig{}, fmt.Errorf("invalid merge mode '%s'. must be shallow, deep", mode)
	}

	return decodeConfig(base)
}

// gateKeys are the fields of the gate object, in reporting order.
var gateKeys = []string{"min_each", "min_geo", "floor_each"}

// MissingGateKeys lists the gate fields a shallow override drops to zero.
// It returns nil for deep merges, or when the override leaves gate alone or sets it completely.
// A zeroed min_geo or floor_each loosens the gate, so callers should surface the result.
func MissingGateKeys(override map[string]any, mode schema.MergeMode) []string {
	if mode == schema.MergeDeep {
		return nil
	}
	gate, ok := override["gate"].(map[string]any)
	if !ok {
		return nil
	}
	var missing []string
	for _, key := range gateKeys {
		if _, ok := gate[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// configToMap converts a typed config to the generic form used for merging.
func configToMap(cfg schema.ScoreFunctionConfig) (map[string]any, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot encode default config: %w", err)
	}
	out := make(map[string]any)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("cannot decode default config: %w", err)
	}
	return out, nil
}

// decodeConfig decodes a merged map into a fresh typed config.
func decodeConfig(in map[string]any) (schema.ScoreFunctionConfig, error) {
	var cfg schema.ScoreFunctionConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &cfg,
	})
	if err != nil {
		return schema.ScoreFunctionConfig{}, err
	}
	if err := dec.Decode(in); err != nil {
		return schema.ScoreFunctionConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// deepMerge returns a copy of dst with src merged in. Objects present on both
// sides are merged recursively; any other src value replaces the dst value.
func deepMerge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst))
	maps.Copy(out, dst)
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := out[key].(map[string]any)
		if srcIsMap && dstIsMap {
			out[key] = deepMerge(dstMap, srcMap)
			continue
		}
		out[key] = srcVal
	}
	return out
}
