// Package host provides the engine collaborators shared by every frontend:
// an event registry, a frame queue and viewport adapters.
//
// None of the types here are safe for concurrent use. Frontends deliver
// everything from their own event loop goroutine.
package host
