package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderCreatedWithOwnerOnlyAccess(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := Folder(afero.NewOsFs())
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(home, FolderName), dir)

	info, err := os.Stat(dir)
	require.Nil(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	}
}

func TestFolderIdempotent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	fs := afero.NewOsFs()

	first, err := Folder(fs)
	require.Nil(t, err)
	second, err := Folder(fs)
	require.Nil(t, err)

	assert.Equal(t, first, second)
}

func TestHistoryPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := HistoryPath(afero.NewOsFs(), "demo")
	require.Nil(t, err)

	assert.Equal(t, filepath.Join(home, FolderName, "demo.hist"), path)
}

func TestLoadProfile(t *testing.T) {
	fs := afero.NewMemMapFs()
	contents := []byte(`
prompt: "demo> "
banner: welcome
comment_delimiter: ";"
history_file: demo.hist
`)
	require.Nil(t, afero.WriteFile(fs, "profile.yaml", contents, 0600))

	profile, err := LoadProfile(fs, "profile.yaml")
	require.Nil(t, err)

	assert.Equal(t, "demo> ", profile.Prompt)
	assert.Equal(t, "welcome", profile.Banner)
	assert.Equal(t, ";", profile.CommentDelimiter)
	assert.Equal(t, "demo.hist", profile.HistoryFile)
}

func TestLoadProfileRejectsUnknownFields(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "profile.yaml", []byte("promt: oops\n"), 0600))

	_, err := LoadProfile(fs, "profile.yaml")
	assert.NotNil(t, err)
}

func TestLoadProfileRejectsMultiCharDelimiter(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "profile.yaml", []byte("comment_delimiter: '##'\n"), 0600))

	_, err := LoadProfile(fs, "profile.yaml")
	assert.NotNil(t, err)
}

func TestLoadProfileMissingFile(t *testing.T) {
	_, err := LoadProfile(afero.NewMemMapFs(), "nope.yaml")
	assert.NotNil(t, err)
}
