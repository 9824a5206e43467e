package history_test

import (
	"context"
	"path/filepath"
	"testing"

	"curator/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBeginAndFinishRun(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, history.Run{
		SourceDir:   "/downloads",
		MoviesDir:   "/lib/Movies",
		ShowsDir:    "/lib/Shows",
		ContentType: "auto",
	})
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if run.ID == "" {
		t.Fatal("run should get a generated id")
	}

	err = store.FinishRun(ctx, run.ID, history.Summary{
		Scanned: 10, Copied: 8, Skipped: 1, Failed: 1, BytesCopied: 4096,
	})
	if err != nil {
		t.Fatalf("finish run: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
	got := runs[0]
	if !got.Finished() {
		t.Fatal("run should be finished")
	}
	if got.Scanned != 10 || got.Copied != 8 || got.Failed != 1 || got.BytesCopied != 4096 {
		t.Fatalf("counters not persisted: %+v", got)
	}
}

func TestFinishRunUnknownID(t *testing.T) {
	store := openStore(t)
	if err := store.FinishRun(context.Background(), "no-such-run", history.Summary{}); err == nil {
		t.Fatal("expected an error for an unknown run id")
	}
}

func TestRecordAndReadFiles(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, history.Run{SourceDir: "/src", MoviesDir: "/m", ShowsDir: "/s", ContentType: "auto"})
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	records := []history.FileRecord{
		{SourcePath: "/src/a.mkv", DestPath: "/m/A/A.mkv", Kind: "movie", Status: "copied"},
		{SourcePath: "/src/b.mkv", Kind: "unresolved", Status: "skipped", Detail: "no title"},
	}
	if err := store.RecordFiles(ctx, run.ID, records); err != nil {
		t.Fatalf("record files: %v", err)
	}

	got, err := store.RunFiles(ctx, run.ID)
	if err != nil {
		t.Fatalf("run files: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two records, got %d", len(got))
	}
	if got[0].SourcePath != "/src/a.mkv" || got[1].Detail != "no title" {
		t.Fatalf("records out of order or incomplete: %+v", got)
	}
}

func TestLastRunSkipsDryAndUnfinished(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, ok, err := store.LastRun(ctx); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	real, err := store.BeginRun(ctx, history.Run{SourceDir: "/first", MoviesDir: "/m", ShowsDir: "/s", ContentType: "auto"})
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := store.FinishRun(ctx, real.ID, history.Summary{Copied: 1}); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	dry, err := store.BeginRun(ctx, history.Run{SourceDir: "/dry", MoviesDir: "/m", ShowsDir: "/s", ContentType: "auto", DryRun: true})
	if err != nil {
		t.Fatalf("begin dry run: %v", err)
	}
	if err := store.FinishRun(ctx, dry.ID, history.Summary{}); err != nil {
		t.Fatalf("finish dry run: %v", err)
	}
	if _, err := store.BeginRun(ctx, history.Run{SourceDir: "/unfinished", MoviesDir: "/m", ShowsDir: "/s", ContentType: "auto"}); err != nil {
		t.Fatalf("begin unfinished run: %v", err)
	}

	last, ok, err := store.LastRun(ctx)
	if err != nil {
		t.Fatalf("last run: %v", err)
	}
	if !ok || last.SourceDir != "/first" {
		t.Fatalf("expected the completed non-dry run, got ok=%v run=%+v", ok, last)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.db")
	ctx := context.Background()

	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	run, err := store.BeginRun(ctx, history.Run{SourceDir: "/src", MoviesDir: "/m", ShowsDir: "/s", ContentType: "auto"})
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := store.FinishRun(ctx, run.ID, history.Summary{Copied: 3}); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Copied != 3 {
		t.Fatalf("data lost across reopen: %+v", runs)
	}
}
