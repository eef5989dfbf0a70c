package bank

import (
	"reflect"
	"testing"
)

func TestHydrateDefaults(t *testing.T) {
	tpl := Template{
		"credits": {Default: float64(1000)},
		"state":   {Default: "open"},
	}

	got := Hydrate(tpl, map[string]any{})
	want := map[string]any{"credits": float64(1000), "state": "open"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Hydrate(empty) = %v, want %v", got, want)
	}
}

func TestHydrateKeepsStoredValues(t *testing.T) {
	tpl := Template{
		"credits": {Default: float64(1000)},
		"state":   {Default: "open"},
	}
	raw := map[string]any{"credits": float64(5), "extra": "kept"}

	got := Hydrate(tpl, raw)
	if got["credits"] != float64(5) {
		t.Errorf("credits = %v, want stored 5", got["credits"])
	}
	if got["state"] != "open" {
		t.Errorf("state = %v, want default open", got["state"])
	}
	// Unknown keys pass through so old records lose nothing.
	if got["extra"] != "kept" {
		t.Errorf("extra = %v, want kept", got["extra"])
	}
}

func TestHydrateGenerators(t *testing.T) {
	tpl := Template{
		"count": {Gen: func(raw any) any {
			if n, ok := raw.(float64); ok {
				return n
			}
			return float64(7)
		}},
	}

	if got := Hydrate(tpl, map[string]any{}); got["count"] != float64(7) {
		t.Errorf("generated default = %v, want 7", got["count"])
	}
	if got := Hydrate(tpl, map[string]any{"count": float64(3)}); got["count"] != float64(3) {
		t.Errorf("generated from raw = %v, want 3", got["count"])
	}
}

func TestHydrateNested(t *testing.T) {
	tpl := Template{
		"profile": {Nested: Template{
			"color": {Default: "green"},
			"badge": {Default: "none"},
		}},
	}
	raw := map[string]any{
		"profile": map[string]any{"color": "red"},
	}

	got := Hydrate(tpl, raw)
	profile, ok := got["profile"].(map[string]any)
	if !ok {
		t.Fatalf("profile is %T, want map", got["profile"])
	}
	if profile["color"] != "red" || profile["badge"] != "none" {
		t.Errorf("profile = %v", profile)
	}
}
