// Package ciutil resolves test environment settings such as the database
// URL, and detects whether tests are running under a CI provider.
package ciutil
