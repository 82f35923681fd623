package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	trackingout "worklog/internal/modules/tracking/adapter/out"
	"worklog/internal/modules/tracking/domain"
)

var day = time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

func session(id string, kind domain.Kind, start time.Time, d time.Duration, note string) domain.Session {
	end := start.Add(d)
	return domain.Session{ID: id, StartTime: start, EndTime: &end, Kind: kind, Note: note}
}

func TestJSONSessionStoreMissingAndEmptyFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := trackingout.NewJSONSessionStore(filepath.Join(dir, "work_log.json"))
	sessions, err := store.Load(context.Background())
	if err != nil || len(sessions) != 0 {
		t.Fatalf("missing file should load empty, got %v %v", sessions, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "work_log.json"), []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sessions, err = store.Load(context.Background())
	if err != nil || len(sessions) != 0 {
		t.Fatalf("empty file should load empty, got %v %v", sessions, err)
	}
}

func TestJSONSessionStoreRejectsMalformedFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "work_log.json")
	for _, payload := range []string{"{not json", `[{"start_time":"2026-07-01T08:00:00Z","end_time":null,"session_type":"Nap","note":""}]`} {
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := trackingout.NewJSONSessionStore(path).Load(context.Background()); err == nil {
			t.Fatalf("expected error for %q", payload)
		}
	}
}

func TestJSONSessionStoreRejectsIncompleteEntries(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"no session type": `[{"id":"a","start_time":"2026-07-01T08:00:00Z","end_time":"2026-07-01T09:00:00Z","note":"x"}]`,
		"no start time":   `[{"id":"a","end_time":"2026-07-01T09:00:00Z","session_type":"Work","note":"x"}]`,
	}
	for name, payload := range cases {
		path := filepath.Join(t.TempDir(), "work_log.json")
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		if _, err := trackingout.NewJSONSessionStore(path).Load(context.Background()); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}

func TestJSONSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "work_log.json")
	store := trackingout.NewJSONSessionStore(path)
	want := []domain.Session{
		session("a", domain.KindWork, day, 45*time.Minute, "deep work"),
		session("b", domain.KindBreak, day.Add(45*time.Minute), 15*time.Minute, ""),
		session("c", domain.KindIdle, day.Add(time.Hour), time.Minute, "quote \" and | pipe"),
	}
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sessions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Kind != want[i].Kind || got[i].Note != want[i].Note ||
			!got[i].StartTime.Equal(want[i].StartTime) || !got[i].EndTime.Equal(*want[i].EndTime) {
			t.Fatalf("session %d differs: %+v vs %+v", i, got[i], want[i])
		}
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file should be gone, stat err %v", err)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "\n  {") || !strings.Contains(string(raw), `"session_type": "Work"`) {
		t.Fatalf("expected pretty-printed json, got:\n%s", raw)
	}
}

func TestSQLiteProjectorDailyTotals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	projector, err := trackingout.NewSQLiteSessionProjector(filepath.Join(t.TempDir(), ".worklog", "worklog.db"))
	if err != nil {
		t.Fatalf("open projector: %v", err)
	}
	t.Cleanup(func() { _ = projector.Close() })

	today := domain.DateOf(day, time.UTC)
	yesterday := today.AddDays(-1)
	rows := []struct {
		s    domain.Session
		date domain.Date
	}{
		{session("a", domain.KindWork, day, time.Hour, ""), today},
		{session("b", domain.KindBreak, day.Add(time.Hour), 10*time.Minute, ""), today},
		{session("c", domain.KindIdle, day.Add(2*time.Hour), time.Hour, ""), today},
		{session("d", domain.KindWork, day.Add(-24*time.Hour), 2*time.Hour, ""), yesterday},
		{session("e", domain.KindWork, day.Add(-72*time.Hour), time.Hour, ""), today.AddDays(-3)},
	}
	for _, row := range rows {
		spent := int64(row.s.Duration(day).Seconds())
		if err := projector.UpsertSession(ctx, row.s, row.date, spent); err != nil {
			t.Fatalf("upsert %s: %v", row.s.ID, err)
		}
	}
	// Upserting again must not double count.
	if err := projector.UpsertSession(ctx, rows[0].s, today, 3600); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}

	totals, err := projector.DailyTotals(ctx, yesterday, today)
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 days, got %+v", totals)
	}
	if totals[0].Date != yesterday || totals[0].Totals.Work != 2*time.Hour || totals[0].Sessions != 1 {
		t.Fatalf("unexpected yesterday totals %+v", totals[0])
	}
	if totals[1].Totals.Work != time.Hour || totals[1].Totals.Break != 10*time.Minute || totals[1].Sessions != 3 {
		t.Fatalf("unexpected today totals %+v", totals[1])
	}

	if err := projector.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	totals, err = projector.DailyTotals(ctx, yesterday, today)
	if err != nil || len(totals) != 0 {
		t.Fatalf("expected empty totals after reset, got %+v %v", totals, err)
	}
}

func TestLazySessionProjectorOpensOnFirstUse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), ".worklog", "worklog.db")
	projector := trackingout.NewLazySessionProjector(dbPath)
	if err := projector.Close(); err != nil {
		t.Fatalf("closing an unopened projector: %v", err)
	}
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("db should not exist before first use, stat err %v", err)
	}

	today := domain.DateOf(day, time.UTC)
	if err := projector.UpsertSession(ctx, session("a", domain.KindWork, day, time.Hour, ""), today, 3600); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	totals, err := projector.DailyTotals(ctx, today, today)
	if err != nil || len(totals) != 1 || totals[0].Totals.Work != time.Hour {
		t.Fatalf("unexpected totals %+v %v", totals, err)
	}
	if err := projector.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db should exist after use: %v", err)
	}
}

func TestMarkdownDayExporterKeepsHandwrittenNotes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	root := t.TempDir()
	exporter := trackingout.NewMarkdownDayExporter(root)
	sessions := []domain.Session{
		session("a", domain.KindWork, day, 90*time.Minute, "release | prep"),
		session("b", domain.KindBreak, day.Add(90*time.Minute), 15*time.Minute, ""),
	}
	log := domain.LogFor(sessions, domain.DateOf(day, time.UTC), time.UTC, day.Add(3*time.Hour))

	path, err := exporter.Export(ctx, log)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if path != filepath.Join(root, "2026", "07", "01.md") {
		t.Fatalf("unexpected path %s", path)
	}
	raw, _ := os.ReadFile(path)
	content := string(raw)
	for _, want := range []string{
		"date: \"2026-07-01\"",
		"work: \"01:30:00\"",
		"sessions: 2",
		"# 2026-07-01",
		"| 08:00 | 09:30:00 | Work | 01:30:00 | release \\| prep |",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("missing %q in:\n%s", want, content)
		}
	}
	if strings.Index(content, "| Work |") > strings.Index(content, "| Break |") {
		t.Fatalf("journal table should be oldest first:\n%s", content)
	}

	edited := strings.Replace(content, "# 2026-07-01\n", "# 2026-07-01\n\nShipped the release.\n", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	log.Sessions = log.Sessions[:1]
	if _, err := exporter.Export(ctx, log); err != nil {
		t.Fatalf("re-export: %v", err)
	}
	raw, _ = os.ReadFile(path)
	content = string(raw)
	if !strings.Contains(content, "Shipped the release.") {
		t.Fatalf("handwritten text was lost:\n%s", content)
	}
	if strings.Contains(content, "release \\| prep") || strings.Count(content, "worklog:sessions:start") != 1 {
		t.Fatalf("managed table not replaced:\n%s", content)
	}
}

func TestMarkdownDayExporterToleratesEditedFrontmatter(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	path := filepath.Join(root, "2026", "07", "01.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	note := "---\ndate: \"2026-07-01\"\nsessions: several\nmood: calm\n---\n\nMy handwritten retro.\n"
	if err := os.WriteFile(path, []byte(note), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sessions := []domain.Session{session("a", domain.KindWork, day, time.Hour, "")}
	log := domain.LogFor(sessions, domain.DateOf(day, time.UTC), time.UTC, day.Add(2*time.Hour))

	if _, err := trackingout.NewMarkdownDayExporter(root).Export(context.Background(), log); err != nil {
		t.Fatalf("export: %v", err)
	}
	raw, _ := os.ReadFile(path)
	content := string(raw)
	for _, want := range []string{"My handwritten retro.", "mood: calm", "sessions: 1", "| 08:00 | 09:00:00 | Work |"} {
		if !strings.Contains(content, want) {
			t.Fatalf("missing %q in:\n%s", want, content)
		}
	}
}

func TestMarkdownDayExporterRefusesUnreadableNote(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	path := filepath.Join(root, "2026", "07", "01.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	note := "---\ndate: \"2026-07-01\"\n\nMy handwritten retro.\n"
	if err := os.WriteFile(path, []byte(note), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sessions := []domain.Session{session("a", domain.KindWork, day, time.Hour, "")}
	log := domain.LogFor(sessions, domain.DateOf(day, time.UTC), time.UTC, day.Add(2*time.Hour))

	if _, err := trackingout.NewMarkdownDayExporter(root).Export(context.Background(), log); err == nil {
		t.Fatalf("expected an error for a note with unterminated frontmatter")
	}
	raw, _ := os.ReadFile(path)
	if string(raw) != note {
		t.Fatalf("note was modified:\n%s", raw)
	}
}
