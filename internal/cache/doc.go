// Package cache provides a small least-recently-used cache for values that
// are expensive to build and cheap to share, such as resampled dab
// textures.
//
//	c := cache.New[string, *dab.Texture](32)
//	tex := c.GetOrCreate("canvas", build)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
