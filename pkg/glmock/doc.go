// Package glmock provides an in-memory double of the GitLab API client for
// testing purposes.
//
// ## Purpose
//
// CI tooling that talks to GitLab (reading project variables, uploading
// generic packages) can be exercised with glmock without network access or
// real credentials. Nothing is persisted: all state lives in the [Client]
// value and disappears with it.
//
// ## Architecture
//
// A [Client] owns a projects registry that is seeded with one project,
// [DefaultProjectID]. Each [Project] owns two registries of its own:
//   - Variables, a plain [ResourceManager]
//   - GenericPackages, a [GenericPackageManager] that stores uploads as resources
//
// Registries behave like maps: Create is idempotent, Update creates on demand
// and then overwrites, and Get fails with an error matching [ErrNotFound] the
// same way the real client fails on a 404.
//
// ## Fixtures and snapshots
//
// A Client can be built from a TOML or YAML fixture (see [Fixture]), and
// [Client.Snapshot] returns a sorted, immutable copy of its state that renders
// back to TOML or YAML for assertions.
//
// ## Integration with testscript
//
// [TestScriptCmd] exposes the double to txtar scripts:
//   - glmock init -url https://example.test
//   - glmock update projects/testid/variables TOKEN value=secret
//   - glmock snapshot
package glmock
