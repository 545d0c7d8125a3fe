// Package idgen mints entity identifiers so that the generator can be
// stubbed in tests. It lives under `internal` because callers should not rely
// on its exact behaviour or API – they should treat identifiers as opaque
// strings whose ordering reflects recency.
package idgen
