package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/shapereg/geom"
	"github.com/katalvlaran/shapereg/segments"
)

var errNoSegments = errors.New("cli: input has no segments")

// segmentFile is the on-disk segment document shared by both commands.
type segmentFile struct {
	Segments []geom.Segment `json:"segments"`
}

// report is the output of the regularize command.
type report struct {
	RunID           string                    `json:"run_id"`
	Segments        []geom.Segment            `json:"segments"`
	ParallelGroups  []segments.ParallelGroup  `json:"parallel_groups"`
	CollinearGroups []segments.CollinearGroup `json:"collinear_groups,omitempty"`
	Modified        int                       `json:"modified"`
	Angles          passStats                 `json:"angles"`
	Offsets         *passStats                `json:"offsets,omitempty"`
}

// passStats summarizes one QP pass.
type passStats struct {
	Pairs      int    `json:"pairs"`
	Iterations int    `json:"iterations"`
	Status     string `json:"status"`
	Modified   int    `json:"modified"`
}

func readSegments(r io.Reader) ([]geom.Segment, error) {
	var f segmentFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	if len(f.Segments) == 0 {
		return nil, errNoSegments
	}

	return f.Segments, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
