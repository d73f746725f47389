// Package pathfinding computes least-cost routes across mountainous terrain,
// trading physical travel effort against avalanche risk.
//
// Pipeline:
//
//   - RasterTriple: co-registered elevation, aspect and static-risk matrices.
//   - DownsampleFactors / Downsample: size guard and block reduction to at most
//     ~50 cells per axis (max for elevation and risk, mean for aspect).
//   - Build: forecast risk factors, min-max risk normalization, percentile
//     floor, and eight-connected edges weighted by Naismith distance.
//   - Search: best-first search with a min-priority frontier.
//   - Reconstruct: predecessor walk mapped back to coordinates.
//
// Grid convention:
//
//	Every matrix and grid in this package is addressed as (x, y), x being the
//	column (growing east) and y the row (growing south). Matrix.At(x, y) is
//	the only accessor; raw rows from a raster reader are rows[y][x].
//
// Heuristic:
//
//	The search heuristic scales a diagonal-distance estimate by the candidate's
//	weighted risk and may overestimate the remaining cost. Search is therefore
//	a greedy-informed best-first search, not an optimality-guaranteed A*.
//	Expected routes depend on this estimate, so it is kept as is.
//
// Concurrency:
//
//	Grids are immutable once built and a search allocates its own frontier,
//	cost and predecessor tables, so concurrent searches share nothing.
package pathfinding
