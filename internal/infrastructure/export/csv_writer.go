package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/afcon-extractor/internal/platform/logging"
)

// CSVWriter writes one comma-separated file per table into dir. Existing
// files are replaced in full.
type CSVWriter struct {
	dir    string
	logger *logging.Logger
}

func NewCSVWriter(dir string, logger *logging.Logger) *CSVWriter {
	if logger == nil {
		logger = logging.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteTable renders header and rows and stores them as dir/name. It returns
// the written path. The file is staged next to the target and renamed so a
// failed run never leaves a truncated table behind.
func (w *CSVWriter) WriteTable(ctx context.Context, name string, header []string, rows [][]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) {
		return "", crerr.Newf("invalid table file name %q", name)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	cw := csv.NewWriter(buf)
	if err := cw.Write(header); err != nil {
		return "", crerr.Wrapf(err, "encode header of %s", name)
	}
	for idx, row := range rows {
		if len(row) != len(header) {
			return "", crerr.Newf("row %d of %s has %d cells, header has %d", idx, name, len(row), len(header))
		}
		if err := cw.Write(row); err != nil {
			return "", crerr.Wrapf(err, "encode row %d of %s", idx, name)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", crerr.Wrapf(err, "flush %s", name)
	}

	target := filepath.Join(w.dir, name)
	tmp, err := os.CreateTemp(w.dir, "."+name+".*.tmp")
	if err != nil {
		return "", crerr.Wrapf(err, "stage %s", target)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", crerr.Wrapf(err, "write %s", target)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", crerr.Wrapf(err, "close %s", target)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return "", crerr.Wrapf(err, "chmod %s", target)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return "", crerr.Wrapf(err, "replace %s", target)
	}

	w.logger.DebugContext(ctx, "table written", "path", target, "rows", len(rows), "bytes", buf.Len())
	return target, nil
}
