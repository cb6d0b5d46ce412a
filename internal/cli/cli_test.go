package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/shapereg/geom"
	"github.com/katalvlaran/shapereg/synth"
)

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Neighbors.K = 0
	cfg.Solver.MaxIterations = 200000
	return cfg
}

func noisySquare(t *testing.T) []geom.Segment {
	t.Helper()
	segs, err := synth.Build([]synth.Option{synth.WithSeed(3), synth.WithAngleNoise(2)}, synth.Square(10))
	require.NoError(t, err)
	return segs
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	l.Debug("hidden")
	assert.Zero(t, buf.Len())
	l.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestProgress_Done(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	newProgress(l, "angles").done(passStats{Pairs: 6, Modified: 4, Iterations: 40, Status: "solved"})
	out := buf.String()
	assert.Contains(t, out, "pass finished")
	assert.Contains(t, out, "pass=angles")
	assert.Contains(t, out, "pairs=6")
	assert.Contains(t, out, "modified=4")

	buf.Reset()
	newProgress(l, "offsets").done(passStats{Pairs: 2, Status: "max-iterations"})
	assert.Contains(t, buf.String(), "without convergence")

	buf.Reset()
	newProgress(l, "offsets").done(passStats{Status: "unsolved"})
	assert.NotContains(t, buf.String(), "without convergence", "nothing to solve is not a failure")
}

func TestLoggerFromContext(t *testing.T) {
	assert.NotNil(t, loggerFromContext(context.Background()))

	l := log.New(io.Discard)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	dir := t.TempDir()
	path := filepath.Join(dir, "shapereg.toml")
	body := `
[angles]
max_angle = 10

[offsets]
enabled = true
max_offset = 0.5

[neighbors]
k = 6

[solver]
max_iterations = 500
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.Angles.MaxAngle)
	assert.True(t, cfg.Offsets.Enabled)
	assert.Equal(t, 0.5, cfg.Offsets.MaxOffset)
	assert.Equal(t, 6, cfg.Neighbors.K)
	assert.Equal(t, 500, cfg.Solver.MaxIterations)
	assert.Equal(t, defaultConfig().Angles.Lambda, cfg.Angles.Lambda, "unset keys keep defaults")

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[angles]\nmax_angel = 3\n"), 0o600))
	_, err = loadConfig(bad)
	assert.ErrorIs(t, err, errBadConfig)

	_, err = loadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, defaultConfig().validate())

	for name, mutate := range map[string]func(*Config){
		"weight":     func(c *Config) { c.Angles.Weight = 0 },
		"lambda":     func(c *Config) { c.Angles.Lambda = 1 },
		"tolerance":  func(c *Config) { c.Offsets.Tolerance = 0 },
		"iterations": func(c *Config) { c.Solver.MaxIterations = 0 },
		"eps":        func(c *Config) { c.Solver.EpsAbs, c.Solver.EpsRel = 0, 0 },
	} {
		cfg := defaultConfig()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.validate(), errBadConfig, name)
	}
}

func TestReadSegments(t *testing.T) {
	segs, err := readSegments(bytes.NewBufferString(`{"segments":[{"source":{"x":0,"y":0},"target":{"x":1,"y":2}}]}`))
	require.NoError(t, err)
	assert.Equal(t, []geom.Segment{geom.Seg(0, 0, 1, 2)}, segs)

	_, err = readSegments(bytes.NewBufferString(`{"segments":[]}`))
	assert.ErrorIs(t, err, errNoSegments)

	_, err = readSegments(bytes.NewBufferString(`{"lines":[]}`))
	assert.Error(t, err)
}

func TestPipeline_Square(t *testing.T) {
	segs := noisySquare(t)
	rep, err := pipeline(context.Background(), segs, testConfig(), log.New(io.Discard))
	require.NoError(t, err)

	assert.Len(t, rep.RunID, 36)
	assert.Equal(t, 4, rep.Modified)
	assert.Equal(t, 6, rep.Angles.Pairs)
	assert.Equal(t, "solved", rep.Angles.Status)
	assert.Nil(t, rep.Offsets)
	require.Len(t, rep.ParallelGroups, 2)
	assert.InDelta(t, 90, geom.AngleDistance(rep.ParallelGroups[0].Angle, rep.ParallelGroups[1].Angle), 1e-9)

	// Bottom/top and left/right end up exactly parallel, neighbors orthogonal.
	d := func(i int) geom.Vector { return segs[i].Direction().Normalize() }
	assert.InDelta(t, 0, d(0).Dot(d(2)), 1e-9)
	assert.InDelta(t, 0, d(1).Dot(d(3)), 1e-9)
	assert.InDelta(t, 0, geom.AngleDistance(segs[0].Orientation(), segs[1].Orientation()), 1e-9)
}

func TestPipeline_Offsets(t *testing.T) {
	segs, err := synth.Build([]synth.Option{synth.WithSeed(5), synth.WithOffsetNoise(0.02)}, synth.Grid(1, 2, 1))
	require.NoError(t, err)
	require.Len(t, segs, 7)

	cfg := testConfig()
	cfg.Offsets.Enabled = true
	rep, err := pipeline(context.Background(), segs, cfg, log.New(io.Discard))
	require.NoError(t, err)

	require.NotNil(t, rep.Offsets)
	assert.Equal(t, 2, rep.Offsets.Pairs)
	assert.Equal(t, 7, rep.Offsets.Modified)
	assert.Len(t, rep.CollinearGroups, 5)
	assert.InDelta(t, segs[0].Source.Y, segs[1].Source.Y, 1e-6)
	assert.InDelta(t, segs[2].Target.Y, segs[3].Source.Y, 1e-6)
}

func TestPipeline_Proximity(t *testing.T) {
	cfg := testConfig()
	cfg.Neighbors.K = 2
	rep, err := pipeline(context.Background(), noisySquare(t), cfg, log.New(io.Discard))
	require.NoError(t, err)
	assert.Len(t, rep.ParallelGroups, 2)
}

func TestPipeline_BadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Angles.Lambda = 0
	_, err := pipeline(context.Background(), noisySquare(t), cfg, log.New(io.Discard))
	assert.ErrorIs(t, err, errBadConfig)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func TestCommands_GenerateThenRegularize(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "square.json")
	reportPath := filepath.Join(dir, "report.json")
	config := filepath.Join(dir, "shapereg.toml")
	require.NoError(t, os.WriteFile(config, []byte("[solver]\nmax_iterations = 200000\n"), 0o600))

	_, err := execute(t, "generate", "--shape", "square", "--noise", "2", "--seed", "9", "-o", fixture)
	require.NoError(t, err)

	_, err = execute(t, "regularize", "-i", fixture, "-o", reportPath, "-c", config, "--neighbors", "0")
	require.NoError(t, err)

	raw, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal(raw, &rep))
	assert.Equal(t, 4, rep.Modified)
	assert.Len(t, rep.Segments, 4)
	assert.Len(t, rep.ParallelGroups, 2)
}

func TestCommands_GenerateToStdout(t *testing.T) {
	out, err := execute(t, "generate", "--shape", "grid", "--rows", "1", "--cols", "1", "--noise", "0")
	require.NoError(t, err)

	var f segmentFile
	require.NoError(t, json.Unmarshal([]byte(out), &f))
	assert.Len(t, f.Segments, 4)
}

func TestCommands_Errors(t *testing.T) {
	_, err := execute(t, "generate", "--shape", "hexagon")
	assert.Error(t, err)

	_, err = execute(t, "regularize", "-i", filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)
}
