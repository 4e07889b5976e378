// Package types defines the pinv data model: catagories (user-defined typed
// schemas), field definitions, the closed field value union, entries, the
// standard error taxonomy, and backend configuration.
package types
