package glmock

import (
	"errors"
	"testing"

	"github.com/aarondl/opt/omit"
	"gotest.tools/v3/assert"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	c := NewTestClient(t, Config{URL: "https://example.test"})

	p, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)
	assert.Equal(t, p.ID, "testid")
	assert.Assert(t, p.Attributes.IsUnset())
	assert.Equal(t, p.Variables.Len(), 0)

	_, err = c.Projects.Get("missing")
	assert.Assert(t, errors.Is(err, ErrNotFound))
}

func TestClientConfigStoredVerbatim(t *testing.T) {
	t.Parallel()

	verify := false
	cfg := Config{
		URL:          "not a url",
		PrivateToken: "glpat-token",
		JobToken:     "job-token",
		SSLVerify:    &verify,
		PerPage:      -1,
		Extra:        map[string]any{"keep_base_url": true},
	}
	c := NewClient(cfg)

	got := c.Config()
	assert.Equal(t, got.URL, "not a url")
	assert.Equal(t, got.PrivateToken, "glpat-token")
	assert.Equal(t, got.JobToken, "job-token")
	assert.Equal(t, *got.SSLVerify, false)
	assert.Equal(t, got.PerPage, -1)
	assert.Equal(t, got.Extra["keep_base_url"], true)
	assert.Equal(t, c.URL(), "not a url")

	// The Client keeps its own copy.
	cfg.Extra["keep_base_url"] = false
	verify = true
	got.Extra["other"] = 1
	assert.Equal(t, c.Config().Extra["keep_base_url"], true)
	assert.Equal(t, *c.Config().SSLVerify, false)
	_, ok := c.Config().Extra["other"]
	assert.Assert(t, !ok)
}

func TestProjectsUpdateReplacesProject(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{URL: "https://example.test"})
	p, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)
	p.Variables.Create("TOKEN")

	c.Projects.Update(DefaultProjectID, omit.From(Attributes{"name": "hestia"}))

	updated, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)
	name, ok := updated.Attr("name")
	assert.Assert(t, ok)
	assert.Equal(t, name, "hestia")
	assert.Equal(t, updated.Variables.Len(), 0)
}

func TestProjectsAreIndependent(t *testing.T) {
	t.Parallel()

	c := NewClient(Config{URL: "https://example.test"})
	c.Projects.Create("other")

	a, err := c.Projects.Get(DefaultProjectID)
	assert.NilError(t, err)
	b, err := c.Projects.Get("other")
	assert.NilError(t, err)

	a.Variables.Create("TOKEN")
	a.GenericPackages.Upload("hestia", "1.0.0", "hestia.tar.gz", "hestia.tar.gz")

	_, err = b.Variables.Get("TOKEN")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.GenericPackages.Package("hestia")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientsAreIndependent(t *testing.T) {
	t.Parallel()

	a := NewClient(Config{URL: "https://a.example.test"})
	b := NewClient(Config{URL: "https://b.example.test"})

	a.Projects.Create("only-in-a")
	_, err := b.Projects.Get("only-in-a")
	assert.ErrorIs(t, err, ErrNotFound)
}
