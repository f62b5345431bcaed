// Package kernel provides the shared domain primitives of the dispatch system.
//
// The package includes:
//   - UUID: A value object for route and order identifiers with validation and comparison
//
// Other value objects (stop sequences, delivery details) live next to the aggregates that own
// them; kernel only holds what every bounded part of the model needs.
package kernel
