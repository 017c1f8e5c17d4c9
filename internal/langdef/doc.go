// Package langdef holds the declarative language definitions that drive the
// decoration engine, the built-in set, a registry keyed by name and file
// extension, and TOML loading for user-supplied languages.
package langdef
