package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"trainerdex/internal/blob"
)

const (
	opExportSnapshot = "export_snapshot"

	// SnapshotPrefix is the blob key prefix for exported snapshots.
	SnapshotPrefix = "snapshots/"
)

// ExportSnapshot writes the current store contents as indented JSON to dst
// under snapshots/<UTC timestamp>.json.
func (s *Service) ExportSnapshot(ctx context.Context, dst blob.Store) (blob.Info, error) {
	return run(ctx, s, opExportSnapshot, "", func(ctx context.Context) (blob.Info, error) {
		var snap Snapshot
		if err := s.store.View(ctx, func(view TransactionView) error {
			snap = Snapshot{
				Trainer:       view.Profile(),
				OtherTrainers: view.ListTrainers(),
				Regions:       view.ListRegions(),
			}
			return nil
		}); err != nil {
			return blob.Info{}, err
		}
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return blob.Info{}, fmt.Errorf("encode snapshot: %w", err)
		}
		taken := s.clock.Now().UTC()
		key := SnapshotPrefix + taken.Format("20060102T150405.000000000Z") + ".json"
		return dst.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{
			ContentType: "application/json",
			Metadata: map[string]string{
				"trainer-id": snap.Trainer.ID,
				"trainers":   strconv.Itoa(len(snap.OtherTrainers)),
			},
		})
	}, func(info blob.Info) string { return info.Key })
}
