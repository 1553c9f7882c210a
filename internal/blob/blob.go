// Package blob opens the object store that receives trainer snapshot exports.
package blob

import (
	"context"
	"fmt"
	"strings"

	"trainerdex/internal/blob/core"
	"trainerdex/internal/config"
	"trainerdex/internal/infra/blob/fs"
	"trainerdex/internal/infra/blob/memory"
	"trainerdex/internal/infra/blob/s3"
)

type (
	Driver     = core.Driver
	PutOptions = core.PutOptions
	Info       = core.Info
	Store      = core.Store
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	ErrNotFound = core.ErrNotFound
	ErrExists   = core.ErrExists
)

// Open selects a Store for the export section of the configuration. An empty
// driver means the filesystem.
func Open(ctx context.Context, cfg config.ExportConfig) (Store, error) {
	driver := Driver(strings.ToLower(cfg.Driver))
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return fs.New(cfg.FSRoot)
	case DriverMemory:
		return memory.New(), nil
	case DriverS3:
		return s3.New(ctx, s3.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}
