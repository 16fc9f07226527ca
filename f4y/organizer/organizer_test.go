package organizer

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/file4you/f4y/config"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer/options"
	"github.com/ZanzyTHEbar/file4you/f4y/ports"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.File4YouConfig {
	t.Helper()
	schemaDir := t.TempDir()
	return &config.File4YouConfig{
		WatchDir:               t.TempDir(),
		SchemaFile:             filepath.Join(schemaDir, "categories.json"),
		MappingFile:            filepath.Join(schemaDir, "folder_mapping.json"),
		ConflictPolicy:         "rename",
		OrganizeTimeoutMinutes: 10,
	}
}

func seedFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, schema.VariantNested, nil, nil)
	assert.Error(t, err)

	_, err = New(&config.File4YouConfig{}, schema.VariantNested, nil, nil)
	assert.Error(t, err, "schema file path is required")

	noMapping := testConfig(t)
	noMapping.MappingFile = ""
	_, err = New(noMapping, schema.VariantFlat, nil, nil)
	assert.Error(t, err, "the flat variant requires its own mapping file path")

	org, err := New(testConfig(t), schema.VariantNested, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, org.Store())
	assert.NotNil(t, org.Gateway())
}

func TestVariantsKeepSeparateSchemaFiles(t *testing.T) {
	cfg := testConfig(t)
	seedFile(t, cfg.WatchDir, "a.txt")

	nested, err := New(cfg, schema.VariantNested, nil, nil)
	require.NoError(t, err)
	_, err = nested.Organize(context.Background(), options.OrganizeOptions{})
	require.NoError(t, err)

	before, err := os.ReadFile(cfg.SchemaFile)
	require.NoError(t, err)
	require.Contains(t, string(before), `"Installers"`)

	// A keyword run over the same directory writes its own file and leaves
	// the extension table alone.
	flat, err := New(cfg, schema.VariantFlat, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.MappingFile, flat.Store().Path())

	_, err = flat.Organize(context.Background(), options.OrganizeOptions{AutoClassify: true})
	require.NoError(t, err)
	assert.FileExists(t, cfg.MappingFile)

	after, err := os.ReadFile(cfg.SchemaFile)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestOrganizeUsesWatchDir(t *testing.T) {
	cfg := testConfig(t)
	seedFile(t, cfg.WatchDir, "a.txt")

	org, err := New(cfg, schema.VariantNested, nil, nil)
	require.NoError(t, err)

	result, err := org.Organize(context.Background(), options.OrganizeOptions{})
	require.NoError(t, err)

	assert.Equal(t, cfg.WatchDir, result.SourceDir)
	assert.Equal(t, 1, result.Moved)
	assert.FileExists(t, filepath.Join(cfg.WatchDir, "Documents & Data", "Documents", "a.txt"))

	// The schema file was materialized on first load
	assert.FileExists(t, cfg.SchemaFile)
}

func TestOrganizeExplicitSource(t *testing.T) {
	cfg := testConfig(t)
	source := t.TempDir()
	seedFile(t, source, "b.exe")

	org, err := New(cfg, schema.VariantNested, nil, nil)
	require.NoError(t, err)

	result, err := org.Organize(context.Background(), options.OrganizeOptions{SourceDir: source})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	assert.FileExists(t, filepath.Join(source, "Executables", "Installers", "b.exe"))
	assert.NoDirExists(t, filepath.Join(cfg.WatchDir, "Executables"))
}

func TestOrganizeNoSourceAnywhere(t *testing.T) {
	cfg := testConfig(t)
	cfg.WatchDir = ""

	org, err := New(cfg, schema.VariantNested, nil, nil)
	require.NoError(t, err)

	_, err = org.Organize(context.Background(), options.OrganizeOptions{})
	assert.Error(t, err)
}

func TestPreviewNeverWrites(t *testing.T) {
	cfg := testConfig(t)
	seedFile(t, cfg.WatchDir, "a.txt")

	org, err := New(cfg, schema.VariantNested, nil, nil)
	require.NoError(t, err)

	result, err := org.Preview(context.Background(), options.OrganizeOptions{})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Moved)
	assert.FileExists(t, filepath.Join(cfg.WatchDir, "a.txt"), "preview leaves the source untouched")
	assert.NoDirExists(t, filepath.Join(cfg.WatchDir, "Documents & Data"))
}

func TestOrganizeAutoClassifyFlat(t *testing.T) {
	cfg := testConfig(t)
	seedFile(t, cfg.WatchDir, "unmatched-thing.bin")

	// No terminal wired at all: AutoClassify must still complete the run
	org, err := New(cfg, schema.VariantFlat, nil, nil)
	require.NoError(t, err)

	result, err := org.Organize(context.Background(), options.OrganizeOptions{AutoClassify: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Moved)
	assert.FileExists(t, filepath.Join(cfg.WatchDir, "Miscellaneous", "unmatched-thing.bin"))
}

func TestAutoClassifyAppliesPerRun(t *testing.T) {
	cfg := testConfig(t)
	seedFile(t, cfg.WatchDir, "zzq-alpha.bin")

	input := strings.NewReader("Projects\n")
	terminal := ports.NewConsoleWith(input, io.Discard, io.Discard)

	org, err := New(cfg, schema.VariantFlat, terminal, nil)
	require.NoError(t, err)

	// An auto run never touches the terminal.
	result, err := org.Organize(context.Background(), options.OrganizeOptions{AutoClassify: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Moved)
	assert.FileExists(t, filepath.Join(cfg.WatchDir, "Miscellaneous", "zzq-alpha.bin"))

	// The next run without the flag prompts again and consumes the answer.
	seedFile(t, cfg.WatchDir, "zzq-beta.bin")
	result, err = org.Organize(context.Background(), options.OrganizeOptions{})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cfg.WatchDir, "Projects", "zzq-beta.bin"))
}

func TestSchemaAccessor(t *testing.T) {
	org, err := New(testConfig(t), schema.VariantFlat, nil, nil)
	require.NoError(t, err)

	sch, err := org.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, schema.VariantFlat, sch.Variant)
	assert.True(t, sch.HasCategory("University"))
}

func TestAnalyze(t *testing.T) {
	cfg := testConfig(t)
	root := cfg.WatchDir
	seedFile(t, root, "a.txt")
	seedFile(t, root, "b.txt")
	seedFile(t, root, "c.pdf")
	seedFile(t, root, ".hidden")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))
	seedFile(t, filepath.Join(root, "sub"), "nested.txt")

	org, err := New(cfg, schema.VariantNested, nil, nil)
	require.NoError(t, err)

	analysis, err := org.Analyze(context.Background(), root, options.AnalysisOptions{WorkerCount: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, analysis.TotalFiles, "hidden files are excluded by default")
	assert.Equal(t, 1, analysis.TotalDirectories)
	assert.Equal(t, 3, analysis.FileTypes[".txt"])
	assert.Equal(t, 1, analysis.FileTypes[".pdf"])
	assert.Equal(t, int64(4), analysis.TotalSize, "four one-byte files")

	withHidden, err := org.Analyze(context.Background(), root,
		options.AnalysisOptions{WorkerCount: 2, IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, 5, withHidden.TotalFiles)
}

func TestAnalyzeInvalidPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.WatchDir = ""

	org, err := New(cfg, schema.VariantNested, nil, nil)
	require.NoError(t, err)

	_, err = org.Analyze(context.Background(), "", options.AnalysisOptions{})
	assert.Error(t, err)
}
