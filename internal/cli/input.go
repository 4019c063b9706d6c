package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// readText reads the document named by path, or stdin for "-".
// The returned title is the file's base name without extension.
func readText(path string, stdin io.Reader) (string, string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", WrapExitError(ExitCommandError, "failed to read stdin", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", NewExitError(ExitCommandError, fmt.Sprintf("file not found: %s", path))
		}
		return "", "", WrapExitError(ExitCommandError, "failed to read file", err)
	}

	base := filepath.Base(path)
	return string(data), strings.TrimSuffix(base, filepath.Ext(base)), nil
}
