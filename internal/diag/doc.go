// Package diag defines the diagnostic model shared by all pipeline phases.
//
//   - Deterministic, serialisable data structures capturing findings from the
//     lexer, parser, resolver and type checker.
//   - Light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting layers.
//
// Package diag performs no formatting or IO; rendering lives in
// internal/diagfmt and orchestration in the driver layer.
package diag
