package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

type memRec struct {
	ID string
}

func (r memRec) RecordID() string { return r.ID }

func TestMemStoreScan_OrderIsDeterministic(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore[memRec]()
	for _, id := range []string{"c", "a", "b"} {
		if err := store.Put(ctx, &memRec{ID: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	out, err := store.Scan(ctx, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out) != 3 || out[0].ID != "a" || out[1].ID != "b" || out[2].ID != "c" {
		t.Fatalf("expected id order a,b,c, got %+v", out)
	}
}

func TestMemStoreScan_WarnsWhenTruncated(t *testing.T) {
	t.Setenv("STORE_SCAN_CAP", "3")
	ctx := context.Background()

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	store := NewMemStore[memRec]()
	store.Logger = logger
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if err := store.Put(ctx, &memRec{ID: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}

	out, err := store.Scan(ctx, nil)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected the capped 3 records, got %d", len(out))
	}
	if !strings.Contains(buf.String(), "scan truncated at 3 records") {
		t.Fatalf("expected truncation warning, got %q", buf.String())
	}
}

func TestMemStoreScan_NoWarningUnderCap(t *testing.T) {
	t.Setenv("STORE_SCAN_CAP", "10")
	ctx := context.Background()

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	store := NewMemStore[memRec]()
	store.Logger = logger
	if err := store.Put(ctx, &memRec{ID: "a"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, err := store.Scan(ctx, nil); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no warning, got %q", buf.String())
	}
}
