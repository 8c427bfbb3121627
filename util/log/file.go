package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/Carver/config"
)

// FilePath returns where release builds write the rotating log for goos:
// the user cache directory on Windows, next to config.json elsewhere.
func FilePath(goos string) (string, error) {
	name := strings.ToLower(config.AppName) + config.LogExt
	if goos == "windows" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("locating cache directory: %w", err)
		}
		return filepath.Join(dir, config.LogWinSubDir, name), nil
	}
	return filepath.Join(config.GetPath(), name), nil
}
