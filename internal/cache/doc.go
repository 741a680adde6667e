// Package cache provides an explicit projection snapshot for presentation
// layers, refreshed on demand instead of requerying the store per read.
package cache
