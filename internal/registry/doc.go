// Package registry admits module implementations against task descriptors.
//
// A module arrives as a Declaration: identity metadata, an optional task
// reference, an optional parent binding it extends, and a run entry point.
// Bind resolves which task the module ends up with (its own, an inherited
// one, or none), rejects declarations that contradict their ancestry, and
// checks a newly bound run's signature parameter by parameter against the
// descriptor. The result is an immutable Binding; the Registry stores
// bindings for lookup by ID or module name.
//
// Binding happens once, at definition time. Nothing here re-validates at
// call time, and a failed declaration leaves no trace in the registry.
package registry
