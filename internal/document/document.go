// Package document provides keyed access to the CloudFormation template that
// compiled resources are merged into.
//
// The template is owned by the caller. A Document only ever adds entries or
// edits the entries it is asked to; it never removes or renames anything.
package document

import (
	"fmt"
	"sort"

	wetwire "github.com/lex00/wetwire-fargate-go"
)

// Document wraps a caller-owned template as a registry of named resources.
type Document struct {
	template *wetwire.Template
}

// New wraps t. A nil Resources section is created on first write.
func New(t *wetwire.Template) *Document {
	return &Document{template: t}
}

// Template returns the underlying template.
func (d *Document) Template() *wetwire.Template {
	return d.template
}

// Has reports whether a resource with the given logical name exists.
func (d *Document) Has(name string) bool {
	_, ok := d.template.Resources[name]
	return ok
}

// Get returns the resource with the given logical name.
func (d *Document) Get(name string) (wetwire.ResourceDef, bool) {
	res, ok := d.template.Resources[name]
	return res, ok
}

// Put inserts or replaces a resource.
func (d *Document) Put(name string, res wetwire.ResourceDef) {
	if d.template.Resources == nil {
		d.template.Resources = make(map[string]wetwire.ResourceDef)
	}
	d.template.Resources[name] = res
}

// PutIfAbsent inserts res unless name is already taken. It reports whether
// the resource was inserted.
func (d *Document) PutIfAbsent(name string, res wetwire.ResourceDef) bool {
	if d.Has(name) {
		return false
	}
	d.Put(name, res)
	return true
}

// Names returns the logical names of all resources, sorted.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.template.Resources))
	for name := range d.template.Resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of resources.
func (d *Document) Len() int {
	return len(d.template.Resources)
}

// Properties returns the property map of a resource, creating it when the
// resource exists without one. The returned map aliases the document.
func (d *Document) Properties(name string) (map[string]any, error) {
	res, ok := d.template.Resources[name]
	if !ok {
		return nil, fmt.Errorf("resource %s not found", name)
	}
	if res.Properties == nil {
		res.Properties = make(map[string]any)
		d.template.Resources[name] = res
	}
	return res.Properties, nil
}
