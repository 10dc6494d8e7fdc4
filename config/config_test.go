package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/xqparse/xquery/dialect"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
		want func(Config) Config
	}{
		{
			name: "empty yaml keeps defaults",
			ext:  ".yaml",
			data: "",
			want: func(c Config) Config { return c },
		},
		{
			name: "yaml dialect and log",
			ext:  ".yml",
			data: "language: xpath\nfulltext10: true\nlog:\n  verbosity: 2\n  file: xq.log\ncheck:\n  jobs: 4\n  extensions: [.xq]\n",
			want: func(c Config) Config {
				c.Language = dialect.XPath
				c.FullText10 = true
				c.Log = LogConfig{Verbosity: 2, File: "xq.log"}
				c.Check = CheckConfig{Jobs: 4, Extensions: []string{".xq"}}
				return c
			},
		},
		{
			name: "toml",
			ext:  ".toml",
			data: "saxon98 = true\nxquery31 = false\n\n[check]\njobs = 1\n",
			want: func(c Config) Config {
				c.Saxon98 = true
				c.XQuery31 = false
				c.Check.Jobs = 1
				return c
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want(Default()), got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte("{}"), ".json")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Decode([]byte("language: lisp\n"), ".yaml")
	assert.Error(t, err)

	_, err = Decode([]byte("check:\n  jobs: -1\n"), ".yaml")
	assert.Error(t, err)
}

func TestWriteAndLoad(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)

			cfg := Default()
			cfg.FullText10 = true
			cfg.Log.Verbosity = 1
			cfg.Check.Extensions = []string{".xq", ".xqm"}
			require.NoError(t, Write(path, cfg, false))

			found, ok := Find(dir)
			require.True(t, ok)
			assert.Equal(t, path, found)

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
			assert.True(t, loaded.Dialect().Supports(dialect.FeatureFullText))

			assert.Error(t, Write(path, Default(), false), "existing files are kept")
			require.NoError(t, Write(path, Default(), true))
			loaded, err = Load(path)
			require.NoError(t, err)
			assert.Equal(t, Default(), loaded)
		})
	}
}

func TestFindMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".xqparse.yaml"), 0o755))
	_, ok := Find(dir)
	assert.False(t, ok)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".xqparse.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
