package snapshot

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/serializer"
	"github.com/NVIDIA/kubenum/pkg/tree"
)

// Decode reads a snapshot document in format from r.
func Decode(r io.Reader, format serializer.Format) (*Snapshot, error) {
	var (
		root *tree.Value
		err  error
	)
	switch format {
	case serializer.FormatYAML:
		root, err = tree.DecodeYAML(r)
	default:
		root, err = tree.DecodeJSON(r)
	}
	if err != nil {
		return nil, enumerrors.Wrap(enumerrors.ErrCodeInvalidRequest, "failed to parse snapshot", err)
	}

	return New(root)
}

// Load reads a snapshot from path, or from stdin when path is "-".
// The format is inferred from the file extension; stdin is read as JSON.
func Load(path string) (*Snapshot, error) {
	return LoadFrom(path, os.Stdin)
}

// LoadFrom is Load with an explicit reader for "-".
func LoadFrom(path string, stdin io.Reader) (*Snapshot, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, enumerrors.New(enumerrors.ErrCodeInvalidRequest, "snapshot path is required")
	}

	if path == serializer.StdoutURI {
		slog.Debug("reading snapshot from stdin")
		return Decode(stdin, serializer.FormatJSON)
	}

	format := serializer.FormatFromPath(path)
	slog.Debug("determined snapshot file format",
		slog.String("path", path),
		slog.String("format", format.String()),
	)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, enumerrors.WrapWithContext(enumerrors.ErrCodeNotFound,
				fmt.Sprintf("snapshot file %q not found", path), err, map[string]any{"path": path})
		}
		return nil, enumerrors.Wrap(enumerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to open snapshot %q", path), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close snapshot file", "error", closeErr)
		}
	}()

	snap, err := Decode(f, format)
	if err != nil {
		return nil, err
	}

	slog.Debug("successfully loaded snapshot from file",
		slog.String("path", path),
		slog.Int("types", len(snap.Types())),
		slog.Int("objects", snap.Count()),
	)
	return snap, nil
}
