package glmock

import (
	"log/slog"

	"github.com/aarondl/opt/omit"
)

// Attribute keys of a resource written by GenericPackageManager.Upload.
const (
	AttrPackageVersion = "package_version"
	AttrFileName       = "file_name"
	AttrPath           = "path"
)

// PackageRecord is the metadata kept for an uploaded generic package. The
// file itself is never read.
type PackageRecord struct {
	Version  string `toml:"version" yaml:"version"`
	FileName string `toml:"file_name" yaml:"file_name"`
	Path     string `toml:"path" yaml:"path"`
}

// GenericPackageManager is a registry whose resources are generic packages.
// An upload is stored as a resource under the package name, so Get, Create
// and Update all see it.
type GenericPackageManager struct {
	*ResourceManager[*Resource]
}

func newGenericPackageManager(env *environment, name string) *GenericPackageManager {
	return &GenericPackageManager{
		ResourceManager: newResourceManager(env, kindGenericPackages, name, newResource),
	}
}

// Upload records packageName at packageVersion, replacing any resource
// registered under the same name.
func (m *GenericPackageManager) Upload(packageName, packageVersion, fileName, path string) {
	attrs := omit.From(Attributes{
		AttrPackageVersion: packageVersion,
		AttrFileName:       fileName,
		AttrPath:           path,
	})

	m.mu.Lock()
	m.store[packageName] = m.build(m.path, packageName, attrs)
	m.mu.Unlock()

	m.observe("upload", resultOK)
	m.env.logger.Debug("Package uploaded.",
		slog.String("registry", m.path),
		slog.String("package", packageName),
		slog.String("version", packageVersion),
		slog.String("file", fileName),
	)
}

// Package returns the package registered under name. Fields the resource
// does not carry are left empty.
func (m *GenericPackageManager) Package(name string) (PackageRecord, error) {
	r, err := m.Get(name)
	if err != nil {
		return PackageRecord{}, err
	}
	return packageRecord(r), nil
}

// Packages returns a record for every package keyed by package name.
func (m *GenericPackageManager) Packages() map[string]PackageRecord {
	resources := m.List()
	out := make(map[string]PackageRecord, len(resources))
	for _, r := range resources {
		out[r.ID] = packageRecord(r)
	}
	return out
}

func packageRecord(r *Resource) PackageRecord {
	var rec PackageRecord
	rec.Version, _ = r.Attr(AttrPackageVersion)
	rec.FileName, _ = r.Attr(AttrFileName)
	rec.Path, _ = r.Attr(AttrPath)
	return rec
}
