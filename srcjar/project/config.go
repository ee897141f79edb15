package project

import (
	"encoding/xml"
	"strings"
)

// ConfigNode is a generic plugin configuration tree, as found under <configuration> in a pom.
type ConfigNode struct {
	XMLName  xml.Name
	Value    string       `xml:",chardata"`
	Children []ConfigNode `xml:",any"`
}

// Name is the element name of the node.
func (n *ConfigNode) Name() string {
	if n == nil {
		return ""
	}
	return n.XMLName.Local
}

// Text is the trimmed character data of the node.
func (n *ConfigNode) Text() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Value)
}

// Child returns the first direct child with the given element name, or nil.
func (n *ConfigNode) Child(name string) *ConfigNode {
	if n == nil {
		return nil
	}
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i]
		}
	}
	return nil
}

// Values returns the text of every direct child (e.g. the <include> items of <includes>).
func (n *ConfigNode) Values() []string {
	if n == nil {
		return nil
	}
	var values []string
	for _, c := range n.Children {
		if v := c.Text(); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Plugin is a build plugin declaration.
type Plugin struct {
	GroupID    string
	ArtifactID string
	Version    string
	// Inherited is false when child projects must not see this declaration.
	Inherited     bool
	Configuration *ConfigNode
	Executions    []Execution
}

// Execution is a plugin execution declaration.
type Execution struct {
	ID            string
	Phase         string
	Inherited     bool
	Goals         []string
	Configuration *ConfigNode
}

// inheritable returns the part of a parent plugin declaration that child projects see.
func inheritable(p *Plugin) *Plugin {
	if p == nil || !p.Inherited {
		return nil
	}
	c := *p
	c.Executions = nil
	for _, e := range p.Executions {
		if e.Inherited {
			c.Executions = append(c.Executions, e)
		}
	}
	return &c
}

// mergeConfig overlays dominant on top of recessive. Children are merged per element name: a dominant child
// replaces the recessive child of the same name, recessive-only children are kept.
func mergeConfig(dominant, recessive *ConfigNode) *ConfigNode {
	switch {
	case dominant == nil && recessive == nil:
		return nil
	case dominant == nil:
		c := *recessive
		return &c
	case recessive == nil:
		c := *dominant
		return &c
	}

	merged := ConfigNode{
		XMLName: dominant.XMLName,
		Value:   dominant.Value,
	}
	merged.Children = append(merged.Children, dominant.Children...)
	for _, rc := range recessive.Children {
		if dominant.Child(rc.XMLName.Local) == nil {
			merged.Children = append(merged.Children, rc)
		}
	}
	return &merged
}

// mergePlugin overlays dominant on top of recessive. Executions are merged by id.
func mergePlugin(dominant, recessive *Plugin) *Plugin {
	switch {
	case dominant == nil && recessive == nil:
		return nil
	case dominant == nil:
		c := *recessive
		return &c
	case recessive == nil:
		c := *dominant
		return &c
	}

	merged := &Plugin{
		GroupID:       dominant.GroupID,
		ArtifactID:    dominant.ArtifactID,
		Version:       dominant.Version,
		Inherited:     dominant.Inherited,
		Configuration: mergeConfig(dominant.Configuration, recessive.Configuration),
	}
	if merged.Version == "" {
		merged.Version = recessive.Version
	}

	byID := make(map[string]int)
	for _, e := range recessive.Executions {
		byID[e.ID] = len(merged.Executions)
		merged.Executions = append(merged.Executions, e)
	}
	for _, e := range dominant.Executions {
		idx, ok := byID[e.ID]
		if !ok {
			merged.Executions = append(merged.Executions, e)
			continue
		}
		base := merged.Executions[idx]
		if len(e.Goals) == 0 {
			e.Goals = base.Goals
		}
		if e.Phase == "" {
			e.Phase = base.Phase
		}
		e.Configuration = mergeConfig(e.Configuration, base.Configuration)
		merged.Executions[idx] = e
	}
	return merged
}
