// Package domain defines the core business entities for receipta.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Receipt: A purchase with its merchant, date, category and line items
//   - LineItem: One purchased product as printed on a receipt
//   - ProductGroup: Line items believed to be the same product
//   - ClusteringResult: All product groups for one category
//   - LocaleTables: The linguistic tables driving description normalisation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import the Go
// standard library and shopspring/decimal for money amounts. All other
// packages depend on domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, github.com/shopspring/decimal
//   - Cannot Import: Any internal/ package, any other external dependency
package domain
