package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"trainerdex/internal/blob/core"
)

func TestStoreLifecycle(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	body := []byte(`{"trainer":"red"}`)
	info, err := store.Put(ctx, "snapshots/2024/a.json", bytes.NewReader(body), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"seq": "1"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(body)) || len(info.ETag) != 64 {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := os.Stat(filepath.Join(root, "snapshots", "2024", "a.json.meta")); err != nil {
		t.Fatalf("expected sidecar: %v", err)
	}
	if _, err := store.Put(ctx, "snapshots/2024/a.json", bytes.NewReader(body), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected exists, got %v", err)
	}

	head, err := store.Head(ctx, "snapshots/2024/a.json")
	if err != nil || head.Metadata["seq"] != "1" || head.ContentType != "application/json" {
		t.Fatalf("head: %v %+v", err, head)
	}
	_, rc, err := store.Get(ctx, "snapshots/2024/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if !bytes.Equal(data, body) {
		t.Fatalf("get mismatch %q", data)
	}

	if _, err := store.Put(ctx, "other.json", bytes.NewReader([]byte("{}")), core.PutOptions{}); err != nil {
		t.Fatalf("put other: %v", err)
	}
	list, err := store.List(ctx, "snapshots/")
	if err != nil || len(list) != 1 || list[0].Key != "snapshots/2024/a.json" {
		t.Fatalf("list: %v %+v", err, list)
	}
	if all, _ := store.List(ctx, ""); len(all) != 2 || all[0].Key != "other.json" {
		t.Fatalf("expected sorted list, got %+v", all)
	}

	if ok, err := store.Delete(ctx, "snapshots/2024/a.json"); err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, err := store.Delete(ctx, "snapshots/2024/a.json"); err != nil || ok {
		t.Fatalf("second delete: %v %v", ok, err)
	}
	if _, err := store.Head(ctx, "snapshots/2024/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, _, err := store.Get(ctx, "snapshots/2024/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found from get, got %v", err)
	}
}

func TestSanitizeKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
		ok   bool
	}{
		{"a/b.json", "a/b.json", true},
		{"a//b.json", "a/b.json", true},
		{"", "", false},
		{"/etc/passwd", "", false},
		{"../escape", "", false},
		{"a/../../b", "", false},
		{"x.json.meta", "", false},
	}
	for _, tc := range cases {
		got, err := sanitizeKey(tc.key)
		if (err == nil) != tc.ok {
			t.Fatalf("%q: err=%v want ok=%v", tc.key, err, tc.ok)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.key, got, tc.want)
		}
	}
}

func TestStoreRejectsBadKeys(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()
	if _, err := store.Put(ctx, "../x", bytes.NewReader(nil), core.PutOptions{}); err == nil {
		t.Fatalf("expected traversal error")
	}
	if _, err := store.Delete(ctx, "/abs"); err == nil {
		t.Fatalf("expected absolute key error")
	}
}

func TestStoreCorruptSidecar(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "bad.json.meta"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := store.List(context.Background(), ""); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := store.Head(context.Background(), "bad.json"); err == nil || errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
