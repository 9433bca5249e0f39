package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the tidechat data directory.
// - Windows: %APPDATA%\tidechat
// - Other OS: ~/.tidechat
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tidechat")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".tidechat"
	}
	return filepath.Join(home, ".tidechat")
}

// DBPath returns the default path to the SQLite request-log database.
func DBPath() string {
	return filepath.Join(DataDir(), "tidechat.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
