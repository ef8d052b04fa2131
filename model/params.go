package model

import "strings"

// Param is a single property parameter. A Param with an empty Name is a
// vCard 2.1 bare type parameter.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered list of property parameters. Multi-valued
// parameters appear as repeated entries with the same name.
type Params []Param

// Get returns the value of the first parameter with the given name,
// matched case-insensitively, and whether it was present.
func (ps Params) Get(name string) (string, bool) {
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns all values of parameters with the given name, matched
// case-insensitively, in order.
func (ps Params) Values(name string) []string {
	var values []string
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			values = append(values, p.Value)
		}
	}
	return values
}

// Types returns the type hints of a property: values of TYPE parameters
// plus any bare (nameless) vCard 2.1 parameters, in order.
func (ps Params) Types() []string {
	var types []string
	for _, p := range ps {
		if p.Name == "" || strings.EqualFold(p.Name, "TYPE") {
			types = append(types, p.Value)
		}
	}
	return types
}

// HasType reports whether the property carries the given type hint,
// matched case-insensitively.
func (ps Params) HasType(value string) bool {
	for _, t := range ps.Types() {
		if strings.EqualFold(t, value) {
			return true
		}
	}
	return false
}
