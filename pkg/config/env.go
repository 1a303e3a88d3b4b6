package config

import (
	"os"
	"path/filepath"
)

// FindEnvFile walks up from the working directory looking for the named env
// file. Test packages run from their own directory, so the repo-root
// .env.test is found by ascending the tree.
func FindEnvFile(name string) (string, error) {
	curr, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(curr, name)
		if _, err = os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(curr)
		if parent == curr {
			break
		}
		curr = parent
	}
	return "", os.ErrNotExist
}
