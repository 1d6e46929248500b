// internal/config/merge.go
//
// Shallow overlay merge of two configuration documents.
//
// A key present in both documents resolves to the overlay value.  Nested
// mappings are replaced wholesale, never merged recursively, so a mode
// document that sets `route53` must carry every `route53.*` key it needs.
package config

// Merge returns a new map holding every key of base and overlay, with the
// overlay value winning on collision.  Inputs are not modified.
func Merge(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	_ = shallowOverlay(base, out)
	_ = shallowOverlay(overlay, out)
	return out
}

// shallowOverlay copies the top-level keys of src into dest.  The
// signature matches koanf.WithMergeFunc.
func shallowOverlay(src, dest map[string]any) error {
	for k, v := range src {
		dest[k] = v
	}
	return nil
}
