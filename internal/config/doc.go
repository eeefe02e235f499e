// Package config defines the application configuration structures and the
// loading logic that populates them from the environment and optional config
// files.
package config
