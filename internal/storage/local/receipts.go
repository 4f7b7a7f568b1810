package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/storage/objectkey"
)

// ReceiptsPath is the URL prefix under which stored receipts are served.
const ReceiptsPath = "/receipts"

// DiskStore writes receipt photos into a directory served over HTTP.
type DiskStore struct {
	dir     string
	baseURL string
	logger  *slog.Logger
	now     func() time.Time
}

// NewDiskStore prepares dir and returns a store whose URLs start at baseURL.
func NewDiskStore(dir, baseURL string, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipts dir: %w", err)
	}
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Dir returns the directory receipts are written to.
func (d *DiskStore) Dir() string {
	return d.dir
}

func (d *DiskStore) Upload(ctx context.Context, data []byte, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domainErrors.Storage("upload receipt", err)
	}

	key := objectkey.New(originalName, d.now())
	f, err := os.OpenFile(filepath.Join(d.dir, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", domainErrors.Storage("upload receipt", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", domainErrors.Storage("upload receipt", err)
	}
	if err := f.Close(); err != nil {
		return "", domainErrors.Storage("upload receipt", err)
	}

	d.logger.Debug("receipt stored",
		slog.String("key", key),
		slog.String("content_type", objectkey.ContentType(data)),
		slog.Int("bytes", len(data)))
	return d.baseURL + ReceiptsPath + "/" + key, nil
}
