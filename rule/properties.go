package rule

// Property is a single CSS declaration produced by a rule.
//
// Value is a string, a Go integer or float, or a nested Properties group.
// Nested groups flatten to dash-joined names before emission, so
// {padding: {top: 1rem}} becomes padding-top: 1rem.
type Property struct {
	Name  string
	Value any
}

// Properties is an ordered list of declarations. Order is preserved through
// the whole pipeline and into the emitted CSS.
type Properties []Property

// Props builds Properties from alternating name/value arguments.
// Pairs whose name is not a string are skipped, as is a trailing odd value.
//
//	rule.Props("display", "block", "padding", rule.Props("top", "1rem"))
func Props(kv ...any) Properties {
	props := make(Properties, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok || name == "" {
			continue
		}
		props = append(props, Property{Name: name, Value: kv[i+1]})
	}
	return props
}

// Get returns the value of the first top-level property with the given name.
func (p Properties) Get(name string) (any, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return nil, false
}

// Clone returns a deep copy, so modifiers never mutate a rule's static properties.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for i, prop := range p {
		if group, ok := prop.Value.(Properties); ok {
			prop.Value = group.Clone()
		}
		out[i] = prop
	}
	return out
}
