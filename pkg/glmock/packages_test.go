package glmock

import (
	"testing"

	"github.com/aarondl/opt/omit"
	"gotest.tools/v3/assert"
)

func TestGenericPackageUpload(t *testing.T) {
	t.Parallel()

	c := NewTestClient(t, Config{URL: "https://example.test"})
	p, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)

	p.GenericPackages.Upload("hestia", "1.2.0", "hestia-1.2.0.tar.gz", "build/hestia-1.2.0.tar.gz")
	p.GenericPackages.Upload("hestia", "1.3.0", "hestia-1.3.0.tar.gz", "build/hestia-1.3.0.tar.gz")

	rec, err := p.GenericPackages.Package("hestia")
	assert.NilError(t, err)
	assert.DeepEqual(t, rec, PackageRecord{
		Version:  "1.3.0",
		FileName: "hestia-1.3.0.tar.gz",
		Path:     "build/hestia-1.3.0.tar.gz",
	})
	assert.Equal(t, len(p.GenericPackages.Packages()), 1)
}

func TestGenericPackageMissing(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{URL: "https://example.test"})
	p, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)

	_, err = p.GenericPackages.Package("hestia")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, err, "404 Not Found: (404): url: https://example.test/projects/testid/packages/generic/hestia")
}

func TestGenericPackagesCopy(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{})
	p, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)
	p.GenericPackages.Upload("hestia", "1.0.0", "hestia.tar.gz", "hestia.tar.gz")

	pkgs := p.GenericPackages.Packages()
	delete(pkgs, "hestia")

	_, err = p.GenericPackages.Package("hestia")
	assert.NilError(t, err)
}

func TestGenericPackageManagerIsRegistry(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{})
	p, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)

	p.GenericPackages.Create("hestia")
	r, err := p.GenericPackages.Get("hestia")
	assert.NilError(t, err)
	assert.Equal(t, r.Manager, p.GenericPackages.Path())

	// A created package carries no upload metadata yet.
	rec, err := p.GenericPackages.Package("hestia")
	assert.NilError(t, err)
	assert.DeepEqual(t, rec, PackageRecord{})
}

func TestGenericPackageUploadIsResource(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{})
	p, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)

	p.GenericPackages.Upload("hestia", "1.3.0", "hestia-1.3.0.tar.gz", "build/hestia-1.3.0.tar.gz")

	r, err := p.GenericPackages.Get("hestia")
	assert.NilError(t, err)
	attrs, ok := r.Attributes.Get()
	assert.Assert(t, ok)
	assert.DeepEqual(t, attrs, Attributes{
		"package_version": "1.3.0",
		"file_name":       "hestia-1.3.0.tar.gz",
		"path":            "build/hestia-1.3.0.tar.gz",
	})

	// Create after an upload keeps the uploaded record.
	p.GenericPackages.Create("hestia")
	got, err := p.GenericPackages.Get("hestia")
	assert.NilError(t, err)
	assert.Assert(t, got == r)
	assert.Equal(t, p.GenericPackages.Len(), 1)

	// Update overwrites it like any other resource.
	p.GenericPackages.Update("hestia", omit.From(Attributes{"package_version": "2.0.0"}))
	rec, err := p.GenericPackages.Package("hestia")
	assert.NilError(t, err)
	assert.DeepEqual(t, rec, PackageRecord{Version: "2.0.0"})

	assert.NilError(t, p.GenericPackages.Delete("hestia"))
	_, err = p.GenericPackages.Package("hestia")
	assert.ErrorIs(t, err, ErrNotFound)
}
