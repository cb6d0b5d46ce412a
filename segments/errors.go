// SPDX-License-Identifier: MIT

package segments

import "errors"

// Caller misuse.
var (
	// ErrNilRange indicates a nil input range.
	ErrNilRange = errors.New("segments: nil range")

	// ErrTooFewSegments indicates an input range with fewer than two segments.
	ErrTooFewSegments = errors.New("segments: at least two segments required")

	// ErrGroupTooSmall indicates a group with fewer than two distinct indices.
	// Nothing is recorded when it is returned.
	ErrGroupTooSmall = errors.New("segments: group needs at least two segments")

	// ErrIndexOutOfRange indicates an index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("segments: index out of range")

	// ErrUnknownSegment indicates a target query on an index that was never grouped.
	ErrUnknownSegment = errors.New("segments: segment not in any group")

	// ErrSelfPair indicates a target query with i == j.
	ErrSelfPair = errors.New("segments: target of a segment with itself")

	// ErrFrameMismatch indicates an offset target between different groups.
	ErrFrameMismatch = errors.New("segments: segments belong to different groups")

	// ErrEmptySolution indicates Update with an empty solution vector.
	ErrEmptySolution = errors.New("segments: empty solution")

	// ErrEmptyTable indicates Update before any relation was recorded.
	ErrEmptyTable = errors.New("segments: no relations recorded")

	// ErrTableMismatch indicates relation discriminators that are not dense.
	ErrTableMismatch = errors.New("segments: relation table is inconsistent")

	// ErrSolutionSize indicates a solution shorter than segments + relations.
	ErrSolutionSize = errors.New("segments: solution too short")

	// ErrBadTolerance indicates a non-positive or non-finite tolerance.
	ErrBadTolerance = errors.New("segments: tolerance must be finite and > 0")
)

// Numeric failures.
var (
	// ErrDegenerateGeometry indicates a zero-length segment or a zero direction.
	ErrDegenerateGeometry = errors.New("segments: degenerate geometry")

	// ErrInvalidSolution indicates NaN or infinite values in the solution.
	ErrInvalidSolution = errors.New("segments: solution is not finite")
)
