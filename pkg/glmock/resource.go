package glmock

import (
	"maps"

	"github.com/aarondl/opt/omit"
)

// Attributes holds the string fields of a remote entity.
type Attributes map[string]string

// Resource is a remote entity such as a variable or a package.
type Resource struct {
	ID string

	// Manager is the path of the registry that owns the resource.
	Manager string

	// Attributes is unset when the resource was created without any, which is
	// different from being set to an empty map.
	Attributes omit.Val[Attributes]
}

func newResource(managerPath, id string, attrs omit.Val[Attributes]) *Resource {
	return &Resource{
		ID:         id,
		Manager:    managerPath,
		Attributes: cloneAttributes(attrs),
	}
}

// Attr returns a single attribute value.
func (r *Resource) Attr(key string) (string, bool) {
	attrs, ok := r.Attributes.Get()
	if !ok {
		return "", false
	}
	v, ok := attrs[key]
	return v, ok
}

func (r *Resource) resource() *Resource { return r }

func cloneAttributes(attrs omit.Val[Attributes]) omit.Val[Attributes] {
	in, ok := attrs.Get()
	if !ok {
		return omit.Val[Attributes]{}
	}
	out := make(Attributes, len(in))
	maps.Copy(out, in)
	return omit.From(out)
}
