package store

import (
	"path/filepath"

	"github.com/nvandessel/lasercircuit/internal/constants"
)

// dbFile is the history database filename.
const dbFile = "history.db"

// LocalDataPath returns the path to the local .lasercircuit directory
// for the given project root.
func LocalDataPath(projectRoot string) string {
	return filepath.Join(projectRoot, constants.DataDirName)
}

// DBPath returns the history database path for the given project root.
func DBPath(projectRoot string) string {
	return filepath.Join(LocalDataPath(projectRoot), dbFile)
}
