package dialect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupports(t *testing.T) {
	xq10 := Config{XQuery10: true}
	xq30 := Config{XQuery30: true}
	ft := Default().With(SpecFullText10)
	saxon94 := Config{XQuery10: true, Saxon94: true}
	saxon98 := Default().With(SpecSaxon98)

	tests := []struct {
		name    string
		cfg     Config
		feature Feature
		want    bool
	}{
		{"core in xquery 1.0", xq10, FeatureCore, true},
		{"window clause needs 3.0", xq10, FeatureWindowClause, false},
		{"window clause in 3.0", xq30, FeatureWindowClause, true},
		{"3.0 implies 1.0", xq30, FeatureTypeswitch, true},
		{"lookup needs 3.1", xq30, FeatureLookup, false},
		{"lookup in default", Default(), FeatureLookup, true},
		{"full text off by default", Default(), FeatureFullText, false},
		{"full text enabled", ft, FeatureFullText, true},
		{"saxon 9.4 map constructor", saxon94, FeatureMapConstructor, true},
		{"saxon 9.4 map assign", saxon94, FeatureSaxonMapAssign, true},
		{"saxon 9.4 has no tuple type", saxon94, FeatureTupleType, false},
		{"saxon 9.8 implies 9.4", saxon98, FeatureSaxonMapAssign, true},
		{"saxon 9.8 tuple type", saxon98, FeatureTupleType, true},
		{"xpath has no prolog", XPath31(), FeatureProlog, false},
		{"xpath has arrows", XPath31(), FeatureArrowExpr, true},
		{"xpath has no direct constructors", XPath31(), FeatureDirectConstructors, false},
		{"unknown feature", Default(), Feature(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Supports(tt.feature))
		})
	}
}

func TestWithWithout(t *testing.T) {
	cfg := Default().With(SpecFullText10, SpecSaxon98)
	assert.True(t, cfg.FullText10)
	assert.True(t, cfg.Saxon98)

	cfg = cfg.Without(SpecSaxon98)
	assert.False(t, cfg.Saxon98)
	assert.True(t, cfg.FullText10)
	assert.Equal(t, "xquery[xquery-1.0,xquery-3.0,xquery-3.1,full-text-1.0]", cfg.String())
}

func TestWithoutImpliedVersions(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		without Spec
		has     []Spec
		lacks   []Spec
	}{
		{"xquery 3.1 only", Default(), SpecXQuery31, []Spec{SpecXQuery10, SpecXQuery30}, []Spec{SpecXQuery31}},
		{"xquery 3.0 clears 3.1", Default(), SpecXQuery30, []Spec{SpecXQuery10}, []Spec{SpecXQuery30, SpecXQuery31}},
		{"xquery 1.0 clears all", Default(), SpecXQuery10, nil, []Spec{SpecXQuery10, SpecXQuery30, SpecXQuery31}},
		{"saxon 9.4 clears 9.8", Default().With(SpecSaxon98), SpecSaxon94, []Spec{SpecXQuery31}, []Spec{SpecSaxon94, SpecSaxon98}},
		{"saxon 9.8 keeps 9.4", Default().With(SpecSaxon94, SpecSaxon98), SpecSaxon98, []Spec{SpecSaxon94}, []Spec{SpecSaxon98}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg.Without(tt.without)
			for _, s := range tt.has {
				assert.True(t, cfg.Has(s), s.String())
			}
			for _, s := range tt.lacks {
				assert.False(t, cfg.Has(s), s.String())
			}
		})
	}

	cfg := Default().Without(SpecXQuery30)
	assert.False(t, cfg.Supports(FeatureSwitch))
	assert.True(t, cfg.Supports(FeatureTypeswitch))
}

func TestLanguageText(t *testing.T) {
	var l Language
	require.NoError(t, l.UnmarshalText([]byte("XPath")))
	assert.Equal(t, XPath, l)

	text, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "xpath", string(text))

	assert.Error(t, l.UnmarshalText([]byte("xslt")))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "dialect.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("language: xpath\nfulltext10: true\n"), 0o644))
	cfg, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, XPath, cfg.Language)
	assert.True(t, cfg.FullText10)
	assert.True(t, cfg.XQuery31, "unset keys keep defaults")

	tomlPath := filepath.Join(dir, "dialect.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("xquery31 = false\nsaxon94 = true\n"), 0o644))
	cfg, err = Load(tomlPath)
	require.NoError(t, err)
	assert.False(t, cfg.XQuery31)
	assert.True(t, cfg.Supports(FeatureMapConstructor))

	_, err = Load(filepath.Join(dir, "dialect.json"))
	assert.Error(t, err)

	_, err = Decode([]byte("{}"), ".json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name string
		want Spec
	}{
		{"full-text-1.0", SpecFullText10},
		{"fulltext10", SpecFullText10},
		{"Saxon-9.8", SpecSaxon98},
		{"xquery30", SpecXQuery30},
		{" saxon94 ", SpecSaxon94},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpec(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSpec("xquery40")
	assert.Error(t, err)
}
