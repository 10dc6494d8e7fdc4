package format

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/xquery/dialect"
	"github.com/dhamidi/xqparse/xquery/parser"
)

var (
	testcasesDir string
	testFilter   string
	updateDumps  bool
)

func init() {
	flag.StringVar(&testcasesDir, "testcases", "testdata", "directory containing .xq fixtures with .txt dumps")
	flag.StringVar(&testFilter, "filter", "", "filter fixtures by substring match on filename")
	flag.BoolVar(&updateDumps, "update", false, "rewrite .txt dumps from the current parser")
}

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

// TestRoundTrip_Testcases parses every .xq fixture and compares the tree dump
// with the .txt file next to it. A fixture named name.<spec>.xq is parsed
// with that specification enabled on top of the default dialect, e.g.
// contains.fulltext10.xq or tuple.saxon98.xq. Each file becomes a subtest:
// go test ./format -run TestRoundTrip_Testcases/flwor
func TestRoundTrip_Testcases(t *testing.T) {
	var files []string
	err := filepath.WalkDir(testcasesDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".xq") {
			if testFilter != "" && !strings.Contains(path, testFilter) {
				return nil
			}
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	if len(files) == 0 {
		t.Skipf("no .xq files found in %s", testcasesDir)
	}

	for _, file := range files {
		relPath, err := filepath.Rel(testcasesDir, file)
		if err != nil {
			relPath = filepath.Base(file)
		}
		testName := strings.TrimSuffix(strings.ReplaceAll(relPath, string(filepath.Separator), "_"), ".xq")
		t.Run(testName, func(t *testing.T) {
			runRoundTripTest(t, file)
		})
	}
}

func runRoundTripTest(t *testing.T, filename string) {
	source, err := os.ReadFile(filename)
	require.NoError(t, err)

	root := parser.Parse(string(source), fixtureDialect(t, filename))
	require.NotNil(t, root)
	got := Dump(root)

	want := strings.TrimSuffix(filename, ".xq") + ".txt"
	if updateDumps {
		require.NoError(t, os.WriteFile(want, []byte(got), 0o644))
		return
	}
	expected, err := os.ReadFile(want)
	require.NoError(t, err, "missing dump; run with -update to create it")
	assert.Equal(t, string(expected), got)
}

func fixtureDialect(t *testing.T, filename string) dialect.Config {
	cfg := dialect.Default()
	ext := filepath.Ext(strings.TrimSuffix(filepath.Base(filename), ".xq"))
	if ext == "" {
		return cfg
	}
	spec, err := dialect.ParseSpec(ext[1:])
	require.NoError(t, err, "fixture suffix %q names no specification", ext)
	return cfg.With(spec)
}
