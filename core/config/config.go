// Package config manages the on-disk folder where friendly shells keep
// their history and log files, plus the optional YAML profile hosts can
// use to customize a shell without code changes.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FolderName is the directory under the user's home that holds all
// friendly shell state.
const FolderName = ".friendlyshell"

// Folder returns the config folder path, creating it on first use. Access
// is restricted to the owner in case secrets end up in a history or log
// file by accident.
func Folder(fs afero.Fs) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, FolderName)
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// HistoryPath returns the history file for the named shell inside the
// config folder, creating the folder if needed.
func HistoryPath(fs afero.Fs, name string) (string, error) {
	dir, err := Folder(fs)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".hist"), nil
}

// LogPath returns the debug log file for the named shell inside the config
// folder, creating the folder if needed.
func LogPath(fs afero.Fs, name string) (string, error) {
	dir, err := Folder(fs)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".log"), nil
}
