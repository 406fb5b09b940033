// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its own routes.
// The Manager keeps features in registration order and loads the enabled ones.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Usage
//
//	mgr := loader.NewManager()
//	mgr.Register(compare.NewFeature(svc))
//	loaded, err := mgr.LoadAll(app)
package loader
