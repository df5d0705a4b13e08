// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface, which defines whether it is
// enabled and how it registers its routes.
//
// # Manager
//
// The Manager holds the registry of features. It handles:
//   - Registration of features via Register()
//   - Loading of enabled features via LoadAll()
package loader
