package config

import (
	"path/filepath"
)

// CfgPath is a path from the config file. Relative paths are taken relative
// to the directory the config file lives in.
type CfgPath string

func (c CfgPath) Resolve(base string) CfgPath {
	path := string(c)
	if path == "" || filepath.IsAbs(path) {
		return c
	}
	return CfgPath(filepath.Join(base, path))
}

func (c CfgPath) String() string {
	return string(c)
}
