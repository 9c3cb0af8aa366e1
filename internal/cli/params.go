package cli

import (
	"os"
	"strconv"

	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

// parseComplex parses a complex flag or argument such as "2", "1.87+0.1i"
// or "(2-1i)".
func parseComplex(name, s string) (complex128, error) {
	z, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "%s: %q is not a complex number", name, s)
	}
	return z, nil
}

// writeOutput writes data to path after validating the path.
func writeOutput(path string, data []byte) error {
	if err := kerrors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
