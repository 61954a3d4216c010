// SPDX-License-Identifier: MIT
package lmmutil

import (
	"fmt"
	"os"
)

// MakeOutDir creates path and any missing parents. An existing directory is
// left as is.
func MakeOutDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", path, err)
	}
	return nil
}
