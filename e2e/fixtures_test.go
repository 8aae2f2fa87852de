//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates a temporary directory used as $HOME and working directory
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteConfig writes a config file with the given item titles into the workspace
func (tf *TUITestFramework) WriteConfig(extra string, titles ...string) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	var b strings.Builder
	b.WriteString("version = 1\n\n[carousel]\nitems_per_page = 1\n")
	b.WriteString(extra)
	for _, title := range titles {
		fmt.Fprintf(&b, "\n[[items]]\ntitle = %q\n", title)
	}

	path := filepath.Join(tf.workspace, "ouroboros.toml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}
