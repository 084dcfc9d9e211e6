package config

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvHome overrides the directory relative runtime paths resolve against.
const EnvHome = "FORMIFY_HOME"

// BaseDir is FORMIFY_HOME when set, otherwise the directory of the running
// binary with symlinks resolved, otherwise the working directory.
func BaseDir() string {
	if home := strings.TrimSpace(os.Getenv(EnvHome)); home != "" {
		return filepath.Clean(home)
	}
	if exe, err := os.Executable(); err == nil && exe != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// ResolvePath makes raw absolute against BaseDir. An empty raw uses fallback.
func ResolvePath(raw, fallback string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = strings.TrimSpace(fallback)
	}
	if target == "" {
		return BaseDir()
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(BaseDir(), target)
}
