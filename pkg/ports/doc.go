// Package ports defines the boundary interfaces of the dialog engine:
// the durable state store, the conversation locker, the rendering boundary
// and the cost-derivation boundary. Adapters implement these interfaces;
// the engine core depends on nothing else.
package ports
