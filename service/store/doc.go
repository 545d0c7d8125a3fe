// Package store owns the engine's mutable state: the ordered task and
// executor collections and the allocation mapping, with the cascade rules
// that keep them consistent. It is the only package allowed to mutate
// entities; all other services go through its operations.
package store
