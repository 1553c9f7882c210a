package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"trainerdex/internal/blob/core"
)

func TestStoreMissingKeys(t *testing.T) {
	store := New()
	ctx := context.Background()
	if _, err := store.Head(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found from head, got %v", err)
	}
	if _, _, err := store.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found from get, got %v", err)
	}
	if ok, err := store.Delete(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected delete false, got %v %v", ok, err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()
	meta := map[string]string{"trainer": "red"}
	info, err := store.Put(ctx, "snapshots/a.json", bytes.NewReader([]byte(`{"a":1}`)), core.PutOptions{ContentType: "application/json", Metadata: meta})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 7 || info.ContentType != "application/json" {
		t.Fatalf("unexpected info %+v", info)
	}
	meta["trainer"] = "mutated"
	if _, err := store.Put(ctx, "snapshots/a.json", bytes.NewReader(nil), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected exists error, got %v", err)
	}
	got, rc, err := store.Get(ctx, "snapshots/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != `{"a":1}` || got.Metadata["trainer"] != "red" {
		t.Fatalf("unexpected blob %q %+v", data, got)
	}
	if _, err := store.Put(ctx, "other/b.json", bytes.NewReader([]byte("b")), core.PutOptions{}); err != nil {
		t.Fatalf("put other: %v", err)
	}
	list, err := store.List(ctx, "snapshots/")
	if err != nil || len(list) != 1 || list[0].Key != "snapshots/a.json" {
		t.Fatalf("list: %v %+v", err, list)
	}
	if all, _ := store.List(ctx, ""); len(all) != 2 || all[0].Key != "other/b.json" {
		t.Fatalf("expected sorted listing, got %+v", all)
	}
	if ok, err := store.Delete(ctx, "snapshots/a.json"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if store.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	if _, err := New().Put(context.Background(), " ", bytes.NewReader(nil), core.PutOptions{}); err == nil {
		t.Fatalf("expected empty key error")
	}
}
