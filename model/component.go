package model

import "strings"

// Component represents one BEGIN/END block: a vCard, a calendar, or a
// nested calendar component such as VEVENT. Properties and child
// components keep the order they appeared in the stream.
type Component struct {
	Name       string
	Properties []*Property
	Components []*Component
}

// NewComponent creates an empty component with the given name. Names are
// stored upper-case, matching how they are written.
func NewComponent(name string) *Component {
	return &Component{Name: strings.ToUpper(name)}
}

// AddProperty appends a property.
func (c *Component) AddProperty(p *Property) {
	c.Properties = append(c.Properties, p)
}

// AddComponent appends a child component.
func (c *Component) AddComponent(child *Component) {
	c.Components = append(c.Components, child)
}

// Property returns the first property with the given name, matched
// case-insensitively, or nil.
func (c *Component) Property(name string) *Property {
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// PropertyValue returns the raw value of the first property with the given
// name, or "" if the property is absent.
func (c *Component) PropertyValue(name string) string {
	if p := c.Property(name); p != nil {
		return p.Value
	}
	return ""
}

// PropertiesByName returns all properties with the given name, matched
// case-insensitively, in order.
func (c *Component) PropertiesByName(name string) []*Property {
	var props []*Property
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, name) {
			props = append(props, p)
		}
	}
	return props
}

// Component returns the first child component with the given name, matched
// case-insensitively, or nil.
func (c *Component) Component(name string) *Component {
	for _, child := range c.Components {
		if strings.EqualFold(child.Name, name) {
			return child
		}
	}
	return nil
}

// ComponentsByName returns all child components with the given name,
// matched case-insensitively, in order.
func (c *Component) ComponentsByName(name string) []*Component {
	var children []*Component
	for _, child := range c.Components {
		if strings.EqualFold(child.Name, name) {
			children = append(children, child)
		}
	}
	return children
}

// Version returns the value of the component's VERSION property, or "".
func (c *Component) Version() string {
	return c.PropertyValue("VERSION")
}
