// Package loader registers the modules that serve the ops HTTP surface.
//
// Each module implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order. LoadAll skips disabled features
// and stops at the first one that fails to load.
package loader
