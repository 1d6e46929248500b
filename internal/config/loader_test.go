// internal/config/loader_test.go
//
// Unit-tests for LoadConfiguration.
//
// Run: go test ./internal/config -v

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration_ProductionOverlay(t *testing.T) {
	dir := writeDir(t, map[string]string{
		BaseFile:     "region: us-east-1\nbase_id: site\n",
		".prod.yaml": "region: us-west-2\n",
		".dev.yaml":  "region: eu-west-1\n",
	})

	doc, err := LoadConfiguration(Production, dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"region": "us-west-2", "base_id": "site"}, doc.Raw())
	assert.Equal(t, Production, doc.Mode())
	assert.Equal(t, dir, doc.Dir())
	assert.Equal(t, []string{"base_id", "region"}, doc.TopLevelKeys())
}

func TestLoadConfiguration_DevelopmentOverlay(t *testing.T) {
	dir := writeDir(t, map[string]string{
		BaseFile:     "region: us-east-1\nbase_id: site\n",
		".prod.yaml": "region: us-west-2\n",
		".dev.yaml":  "region: eu-west-1\n",
	})

	doc, err := LoadConfiguration(ParseMode("bogus"), dir)
	require.NoError(t, err)

	region, err := doc.String("region")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", region)
}

func TestLoadConfiguration_MissingModeDocument(t *testing.T) {
	dir := writeDir(t, map[string]string{BaseFile: "region: us-east-1\n"})

	doc, err := LoadConfiguration(Production, dir)

	assert.Nil(t, doc)
	require.ErrorIs(t, err, ErrFileNotFound)
	var fnf *FileNotFoundError
	require.True(t, errors.As(err, &fnf))
	assert.Equal(t, filepath.Join(dir, ".prod.yaml"), fnf.Path)
	assert.Contains(t, err.Error(), filepath.Join(dir, ".prod.yaml"))
}

func TestLoadConfiguration_MissingBaseDocument(t *testing.T) {
	dir := writeDir(t, map[string]string{".dev.yaml": "region: us-east-1\n"})

	_, err := LoadConfiguration(Development, dir)

	var fnf *FileNotFoundError
	require.ErrorAs(t, err, &fnf)
	assert.Equal(t, filepath.Join(dir, BaseFile), fnf.Path)
}

func TestLoadConfiguration_ParseErrors(t *testing.T) {
	cases := map[string]string{
		"unclosed flow":  "region: [us-east-1\n",
		"top-level seq":  "- a\n- b\n",
		"nested mapping": "region: us-east-1: extra\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := writeDir(t, map[string]string{
				BaseFile:    "region: us-east-1\n",
				".dev.yaml": body,
			})

			doc, err := LoadConfiguration(Development, dir)

			assert.Nil(t, doc)
			require.ErrorIs(t, err, ErrParse)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, filepath.Join(dir, ".dev.yaml"), pe.Path)
		})
	}
}

func TestLoadConfiguration_EmptyModeDocument(t *testing.T) {
	dir := writeDir(t, map[string]string{
		BaseFile:    "region: us-east-1\n",
		".dev.yaml": "",
	})

	doc, err := LoadConfiguration(Development, dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"region": "us-east-1"}, doc.Raw())
}

func TestLoadConfiguration_ShallowNested(t *testing.T) {
	dir := writeDir(t, map[string]string{
		BaseFile:    baseYAML,
		".dev.yaml": "route53:\n  domainName: dev.example.com\n",
	})

	doc, err := LoadConfiguration(Development, dir)
	require.NoError(t, err)

	got, err := doc.String("route53.domainName")
	require.NoError(t, err)
	assert.Equal(t, "dev.example.com", got)

	_, err = doc.Get("route53.hostedZoneName")
	require.ErrorIs(t, err, ErrMissingKey, "nested base keys must not survive a replaced section")

	owner, err := doc.String("githubInfo.owner")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
}

func TestDocument_MissingKey(t *testing.T) {
	dir := writeDir(t, map[string]string{BaseFile: "a: 1\n", ".dev.yaml": ""})
	doc, err := LoadConfiguration(Development, dir)
	require.NoError(t, err)

	_, err = doc.String("githubInfo.branch")
	var mk *MissingKeyError
	require.ErrorAs(t, err, &mk)
	assert.Equal(t, "githubInfo.branch", mk.Key)
}

func TestDocument_YAML(t *testing.T) {
	dir := writeDir(t, map[string]string{BaseFile: "a: 1\n", ".dev.yaml": "b: two\n"})
	doc, err := LoadConfiguration(Development, dir)
	require.NoError(t, err)

	out, err := doc.YAML()
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: two\n", string(out))
}

func TestDefaultDir_ClimbsToProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, DirName), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, DirName, BaseFile), []byte("a: 1\n"), 0o600))
	sub := filepath.Join(root, "internal", "stacks")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	chdir(t, sub)

	got, err := filepath.EvalSymlinks(DefaultDir())
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(root, DirName))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDefaultDir_FallsBackToCwd(t *testing.T) {
	wd := t.TempDir()
	chdir(t, wd)

	got := DefaultDir()
	assert.Equal(t, DirName, filepath.Base(got))
}
