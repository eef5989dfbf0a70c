package bank

// Template describes how to fill a stored record's missing fields before it
// is decoded into a typed entity. Each field carries either a literal
// default, a generator invoked with the raw value (for derived or validated
// defaults such as "use the provided value or now"), or a nested template
// for sub-objects.
type Template map[string]Field

// Field is one template entry. Exactly one of Default, Gen or Nested is
// normally set; Gen wins over Default when both are present.
type Field struct {
	Default any
	Gen     func(raw any) any
	Nested  Template
}

// Hydrate fills a new map from raw where present and from the template's
// defaults otherwise. Keys present in raw but absent from the template are
// copied through untouched. Hydration is best-effort and never fails;
// domain validation is the caller's job.
func Hydrate(tpl Template, raw map[string]any) map[string]any {
	out := make(map[string]any, len(tpl)+len(raw))

	for name, field := range tpl {
		rawVal, ok := raw[name]
		switch {
		case field.Gen != nil:
			out[name] = field.Gen(rawVal)
		case field.Nested != nil:
			sub, _ := rawVal.(map[string]any)
			out[name] = Hydrate(field.Nested, sub)
		case ok:
			out[name] = rawVal
		default:
			out[name] = field.Default
		}
	}

	// Permissive merge: unknown keys survive hydration.
	for name, val := range raw {
		if _, known := tpl[name]; !known {
			out[name] = val
		}
	}
	return out
}
