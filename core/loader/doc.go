// Package loader provides the feature loading system of the read API.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and LoadAll registers the
// routes of every enabled one. The serve command registers the leaderboard and
// characters features.
package loader
