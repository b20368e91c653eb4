package glmock

import (
	"maps"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Snapshot is an immutable, sorted view of a Client's state.
type Snapshot struct {
	URL      string            `toml:"url" yaml:"url"`
	Projects []ProjectSnapshot `toml:"project" yaml:"projects"`
}

// ProjectSnapshot is one project with its variables and generic packages,
// each sorted by id.
type ProjectSnapshot struct {
	ID         string             `toml:"id" yaml:"id"`
	Attributes Attributes         `toml:"attributes,omitempty" yaml:"attributes,omitempty"`
	Variables  []ResourceSnapshot `toml:"variable,omitempty" yaml:"variables,omitempty"`
	Packages   []PackageSnapshot  `toml:"package,omitempty" yaml:"packages,omitempty"`
}

// ResourceSnapshot is a single registry resource.
type ResourceSnapshot struct {
	ID         string     `toml:"id" yaml:"id"`
	Attributes Attributes `toml:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// PackageSnapshot is a generic package resource. Version, FileName and Path
// come from the upload attributes; any other attribute set on the resource
// is kept in Attributes.
type PackageSnapshot struct {
	Name       string     `toml:"name" yaml:"name"`
	Version    string     `toml:"version,omitempty" yaml:"version,omitempty"`
	FileName   string     `toml:"file_name,omitempty" yaml:"file_name,omitempty"`
	Path       string     `toml:"path,omitempty" yaml:"path,omitempty"`
	Attributes Attributes `toml:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Snapshot copies the current state of the Client. The result is safe to
// read while the Client keeps changing.
func (c *Client) Snapshot() Snapshot {
	snap := Snapshot{URL: c.cfg.URL}
	for _, p := range c.Projects.List() {
		ps := ProjectSnapshot{
			ID:         p.ID,
			Attributes: snapshotAttributes(&p.Resource),
		}
		for _, v := range p.Variables.List() {
			ps.Variables = append(ps.Variables, ResourceSnapshot{
				ID:         v.ID,
				Attributes: snapshotAttributes(v),
			})
		}
		for _, r := range p.GenericPackages.List() {
			ps.Packages = append(ps.Packages, packageSnapshot(r))
		}
		snap.Projects = append(snap.Projects, ps)
	}
	return snap
}

// Project returns the snapshot of the project with the given id.
func (snap Snapshot) Project(id string) (ProjectSnapshot, bool) {
	for _, p := range snap.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return ProjectSnapshot{}, false
}

func (snap Snapshot) MarshalTOML() ([]byte, error) {
	return toml.Marshal(snap)
}

func (snap Snapshot) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(snap)
}

func packageSnapshot(r *Resource) PackageSnapshot {
	rec := packageRecord(r)
	attrs := snapshotAttributes(r)
	for _, key := range []string{AttrPackageVersion, AttrFileName, AttrPath} {
		delete(attrs, key)
	}
	if len(attrs) == 0 {
		attrs = nil
	}
	return PackageSnapshot{
		Name:       r.ID,
		Version:    rec.Version,
		FileName:   rec.FileName,
		Path:       rec.Path,
		Attributes: attrs,
	}
}

// snapshotAttributes copies the attributes of r. Unset and empty attributes
// both render as omitted, so snapshots do not keep that distinction.
func snapshotAttributes(r *Resource) Attributes {
	attrs, ok := r.Attributes.Get()
	if !ok {
		return nil
	}
	return maps.Clone(attrs)
}
