package glmock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Fixture describes the initial state of a Client. Example:
//
//	[client]
//	url = "https://gitlab.example.test"
//	job_token = "ci-job-token"
//
//	[[project]]
//	id = "hestia"
//	attributes = { default_branch = "devel" }
//
//	  [[project.variable]]
//	  key = "HESTIA_VERSION"
//	  attributes = { value = "1.3.0" }
//
//	  [[project.package]]
//	  name = "hestia"
//	  version = "1.3.0"
//	  file_name = "hestia-1.3.0.tar.gz"
//	  path = "build/hestia-1.3.0.tar.gz"
type Fixture struct {
	Client   Config           `toml:"client" yaml:"client"`
	Projects []ProjectFixture `toml:"project" yaml:"projects"`
}

// ProjectFixture seeds one project. A nil Attributes creates the project
// without attributes.
type ProjectFixture struct {
	ID         string            `toml:"id" yaml:"id"`
	Attributes Attributes        `toml:"attributes" yaml:"attributes"`
	Variables  []VariableFixture `toml:"variable" yaml:"variables"`
	Packages   []PackageFixture  `toml:"package" yaml:"packages"`
}

// VariableFixture seeds one project variable under Key.
type VariableFixture struct {
	Key        string     `toml:"key" yaml:"key"`
	Attributes Attributes `toml:"attributes" yaml:"attributes"`
}

// PackageFixture seeds one generic package upload.
type PackageFixture struct {
	Name     string `toml:"name" yaml:"name"`
	Version  string `toml:"version" yaml:"version"`
	FileName string `toml:"file_name" yaml:"file_name"`
	Path     string `toml:"path" yaml:"path"`
}

// LoadFixture reads a TOML or YAML fixture, chosen by file extension, and
// validates it.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var f Fixture
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unsupported fixture format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate requires every project id and variable key to be set and unique
// within its scope, and every package to be named.
func (f *Fixture) Validate() error {
	if f == nil {
		return errors.New("fixture is nil")
	}

	seenProjects := make(map[string]struct{}, len(f.Projects))
	for _, p := range f.Projects {
		if p.ID == "" {
			return errors.New("project.id is required")
		}
		if _, ok := seenProjects[p.ID]; ok {
			return fmt.Errorf("duplicate project id %q", p.ID)
		}
		seenProjects[p.ID] = struct{}{}

		seenVariables := make(map[string]struct{}, len(p.Variables))
		for _, v := range p.Variables {
			if v.Key == "" {
				return fmt.Errorf("variable key missing in project %s", p.ID)
			}
			if _, ok := seenVariables[v.Key]; ok {
				return fmt.Errorf("duplicate variable %q in project %s", v.Key, p.ID)
			}
			seenVariables[v.Key] = struct{}{}
		}
		for _, pkg := range p.Packages {
			if pkg.Name == "" {
				return fmt.Errorf("package name missing in project %s", p.ID)
			}
		}
	}
	return nil
}

// NewClientFromFixture builds a Client from f.Client and seeds it with the
// projects, variables and packages f declares. Entries without attributes are
// created with their attributes unset.
func NewClientFromFixture(f *Fixture, opts ...Option) (*Client, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	c := NewClient(f.Client, opts...)
	for _, pf := range f.Projects {
		seed(c.Projects, pf.ID, pf.Attributes)
		p, err := c.Projects.Get(pf.ID)
		if err != nil {
			return nil, fmt.Errorf("seed project %s: %w", pf.ID, err)
		}
		for _, vf := range pf.Variables {
			seed(p.Variables, vf.Key, vf.Attributes)
		}
		for _, pkg := range pf.Packages {
			p.GenericPackages.Upload(pkg.Name, pkg.Version, pkg.FileName, pkg.Path)
		}
	}
	return c, nil
}

// NewClientFromFile loads a fixture file and returns the seeded Client.
func NewClientFromFile(path string, opts ...Option) (*Client, error) {
	f, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	return NewClientFromFixture(f, opts...)
}

func seed[R record](m *ResourceManager[R], id string, attrs Attributes) {
	if attrs == nil {
		m.Create(id)
		return
	}
	m.Update(id, omit.From(attrs))
}
