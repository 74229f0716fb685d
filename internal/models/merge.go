package models

import (
	"encoding/json"
	"fmt"
)

// MergeMaps merges src into dst recursively and returns the result. The
// merge policy is:
//   - map values are merged key by key, recursing into nested maps
//   - slice values are replaced wholesale by the incoming value
//   - scalar values overwrite
//
// dst is not modified; a new map is returned.
func MergeMaps(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := out[k].(map[string]any)
		if srcIsMap && dstIsMap {
			out[k] = MergeMaps(dstMap, srcMap)
			continue
		}
		out[k] = v
	}
	return out
}

// MergeProfile applies a partial update to a profile using the MergeMaps
// policy. The partial uses the profile's JSON field names, so a nested
// update like {"macros": {"calories": 2000}} merges into the existing
// goals instead of replacing them.
func MergeProfile(profile Profile, partial map[string]any) (Profile, error) {
	if len(partial) == 0 {
		return profile, nil
	}

	current, err := profileToMap(profile)
	if err != nil {
		return Profile{}, err
	}

	merged := MergeMaps(current, partial)

	data, err := json.Marshal(merged)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to serialize merged profile: %w", err)
	}

	var out Profile
	if err := json.Unmarshal(data, &out); err != nil {
		return Profile{}, fmt.Errorf("failed to apply profile update: %w", err)
	}
	return out, nil
}

// profileToMap round-trips a profile through JSON so the merge operates on
// the same field names the API uses.
func profileToMap(profile Profile) (map[string]any, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize profile: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to deserialize profile: %w", err)
	}
	return m, nil
}
