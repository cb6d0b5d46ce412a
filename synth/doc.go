// SPDX-License-Identifier: MIT
// Package: shapereg/synth
//
// Package synth builds deterministic, optionally noisy segment fixtures for
// tests, examples, benchmarks and the CLI "generate" command.
//
// Model:
//   - A Constructor emits clean segments from the resolved config.
//   - Build runs constructors in order, perturbs each batch with the
//     configured noise and concatenates the results.
//   - Noise needs an explicit RNG (WithSeed / WithRand); the same seed,
//     options and constructor order always give identical output.
//
// Shapes:
//   - Square(size): four sides of an axis-aligned square.
//   - Grid(rows, cols, spacing): unit edges of a rows×cols cell grid.
//   - Star(n, radius): n rays around the origin.
//   - Polyline(points): consecutive edges of an open chain.
//
// Errors are sentinels (ErrTooFewSegments, ErrBadSize, ErrNeedRandSource,
// ErrConstructFailed) wrapped with the constructor name.
package synth
