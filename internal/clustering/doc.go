// Package clustering groups receipt line items that name the same product.
//
// Three pieces run as a pipeline over one category at a time:
//
//   - Normalizer: raw description -> canonical comparison string
//   - Dice: bigram set similarity between two canonical strings
//   - Engine: greedy single-pass assignment of items to product groups
//
// Each group is anchored on the canonical form of its first member. An
// item joins the best scoring group when the score reaches Threshold and
// otherwise starts a new group. The result depends on input order; callers
// that need stable groups across re-fetches must pin the order first.
//
// Everything here is synchronous and free of I/O. A Normalizer and the
// scorers may be shared between goroutines; an Engine holds no per-run
// state and may be shared as well.
package clustering
