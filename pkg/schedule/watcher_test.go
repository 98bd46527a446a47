package schedule

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncer_CollapsesBursts(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("Expected 1 callback for a burst of triggers, got %d", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(150 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("Expected no callback after Stop, got %d", got)
	}

	// Triggers after Stop are ignored.
	d.Trigger(func() { fired.Add(1) })
	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("Expected trigger after Stop to be ignored, got %d", got)
	}
}

func TestIsDraftEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "draft markdown write",
			event: fsnotify.Event{Name: "output/Go/drafts/go.md", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "draft markdown create",
			event: fsnotify.Event{Name: "output/Rust/drafts/rust.md", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "draft metadata json",
			event: fsnotify.Event{Name: "output/Go/drafts/meta/go.json", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "final chapter",
			event: fsnotify.Event{Name: "output/Go/final/go.md", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "book outside drafts",
			event: fsnotify.Event{Name: "output/Go/book.md", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "chmod ignored",
			event: fsnotify.Event{Name: "output/Go/drafts/go.md", Op: fsnotify.Chmod},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDraftEvent(tt.event); got != tt.want {
				t.Errorf("isDraftEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestDraftsWatcher_TriggersOnNewDraft(t *testing.T) {
	root := t.TempDir()
	draftsDir := filepath.Join(root, "Go", "drafts")
	if err := os.MkdirAll(draftsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	watcher, err := NewDraftsWatcher(root, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()

	quiet := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watcher.Watch(ctx, func() {
		select {
		case quiet <- struct{}{}:
		default:
		}
	})

	// Give the watcher time to register the tree.
	time.Sleep(100 * time.Millisecond)

	draft := filepath.Join(draftsDir, "go.md")
	if err := os.WriteFile(draft, []byte("# Go\n\nDraft body.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-quiet:
	case <-time.After(3 * time.Second):
		t.Fatal("Expected a debounced callback after writing a draft")
	}
}

func TestDraftsWatcher_IgnoresMetadataWrites(t *testing.T) {
	root := t.TempDir()
	metaDir := filepath.Join(root, "Go", "drafts", "meta")
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		t.Fatal(err)
	}

	watcher, err := NewDraftsWatcher(root, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer watcher.Close()

	quiet := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watcher.Watch(ctx, func() {
		select {
		case quiet <- struct{}{}:
		default:
		}
	})

	time.Sleep(100 * time.Millisecond)

	meta := filepath.Join(metaDir, "go.json")
	if err := os.WriteFile(meta, []byte(`{"slug":"go"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-quiet:
		t.Fatal("Metadata writes must not trigger a polish run")
	case <-time.After(300 * time.Millisecond):
	}
}
