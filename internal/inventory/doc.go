// Package inventory reads and writes Sphinx object inventories (objects.inv
// version 2) and resolves them for the configured cross-reference targets.
//
// A target whose inventory path is set is read from disk; otherwise the
// inventory is downloaded from the target's base URL. Download failures are
// retried according to a retry.Policy and, when loading every target at once,
// degrade to a warning so that one unreachable project never fails a build.
package inventory
