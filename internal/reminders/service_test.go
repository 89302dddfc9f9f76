package reminders

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/lembrete/internal/logger"
	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/storage"
)

var fixedNow = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *storage.SQLiteRepository) {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "lembrete-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	if err := storage.MigrateUp(context.Background(), repo.DB()); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	svc := NewService(repo,
		WithClock(func() time.Time { return fixedNow }),
		WithLogger(logger.Discard()),
	)
	return svc, repo
}

func TestCreateParsesMaskedDate(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	rem, err := svc.Create(ctx, Input{Text: "  Pagar aluguel ", DueDate: "05022026", Priority: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rem.ID <= 0 || rem.Text != "Pagar aluguel" || rem.Priority != model.PriorityHigh {
		t.Fatalf("unexpected reminder: %#v", rem)
	}
	want := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)
	if !rem.DueDate.Equal(want) {
		t.Fatalf("due date got %s want %s", rem.DueDate, want)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    Input
		field string
	}{
		{"empty text", Input{Text: "  ", DueDate: "01/02/2026"}, "text"},
		{"impossible date", Input{Text: "x", DueDate: "31/02/2026"}, "due_date"},
		{"incomplete date", Input{Text: "x", DueDate: "01/02"}, "due_date"},
		{"year out of range", Input{Text: "x", DueDate: "01/01/1979"}, "due_date"},
		{"trailing digits", Input{Text: "x", DueDate: "15/03/2026999"}, "due_date"},
		{"other separators", Input{Text: "x", DueDate: "15.03.2026 extra 42"}, "due_date"},
		{"ten bare digits", Input{Text: "x", DueDate: "1503202612"}, "due_date"},
		{"bad priority", Input{Text: "x", DueDate: "01/02/2026", Priority: 7}, "priority"},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, tc.in)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: field got %q want %q", tc.name, verr.Field, tc.field)
		}
	}
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc, _ := setupService(t)
	missing := int64(99)
	_, err := svc.Create(context.Background(), Input{Text: "x", DueDate: "01/02/2026", CategoryID: &missing})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "category_id" {
		t.Fatalf("expected category validation error, got %v", err)
	}
}

func TestUpdateKeepsCompletion(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	rem, err := svc.Create(ctx, Input{Text: "Consulta médica", DueDate: "20/01/2026"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.SetCompleted(ctx, rem.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	updated, err := svc.Update(ctx, rem.ID, Input{Text: "Consulta médica às 14h", DueDate: "21/01/2026", Priority: 1})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Completed || updated.Text != "Consulta médica às 14h" || datemaskFormat(updated.DueDate) != "21/01/2026" {
		t.Fatalf("unexpected update result: %#v", updated)
	}

	if _, err := svc.Update(ctx, 12345, Input{Text: "x", DueDate: "21/01/2026"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleAndListByStatus(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, Input{Text: "A", DueDate: "16/01/2026"})
	b, _ := svc.Create(ctx, Input{Text: "B", DueDate: "10/01/2026"})
	if _, err := svc.Toggle(ctx, a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	pending, err := svc.List(ctx, Filter{Status: StatusPending})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != b.ID {
		t.Fatalf("unexpected pending list: %#v", pending)
	}
	done, _ := svc.List(ctx, Filter{Status: StatusDone})
	if len(done) != 1 || done[0].ID != a.ID {
		t.Fatalf("unexpected done list: %#v", done)
	}
	all, _ := svc.List(ctx, Filter{Status: StatusAll})
	if len(all) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(all))
	}

	upcoming, err := svc.Upcoming(ctx)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 0 {
		t.Fatalf("past pending reminder must not be upcoming: %#v", upcoming)
	}

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, CategoryInput{Name: "Saúde", Color: "#0a0"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := svc.CreateCategory(ctx, CategoryInput{Name: "Saúde"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	var verr *ValidationError
	if _, err := svc.CreateCategory(ctx, CategoryInput{Name: "X", Color: "red"}); !errors.As(err, &verr) || verr.Field != "color" {
		t.Fatalf("expected color validation error, got %v", err)
	}

	found, err := svc.FindCategory(ctx, " saúde ")
	if err != nil || found.ID != cat.ID {
		t.Fatalf("find category: %#v %v", found, err)
	}

	rem, err := svc.Create(ctx, Input{Text: "Dentista", DueDate: "02/03/2026", CategoryID: &cat.ID})
	if err != nil {
		t.Fatalf("create reminder: %v", err)
	}
	byCat, _ := svc.List(ctx, Filter{CategoryID: &cat.ID})
	if len(byCat) != 1 {
		t.Fatalf("expected 1 reminder in category, got %d", len(byCat))
	}

	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	after, err := svc.Get(ctx, rem.ID)
	if err != nil {
		t.Fatalf("reminder must survive category delete: %v", err)
	}
	if after.CategoryID != nil {
		t.Fatalf("expected category detached, got %d", *after.CategoryID)
	}
}

func TestSuggestUsesStoredHistory(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, text := range []string{"Revisar relatório mensal", "Revisar relatório anual"} {
		if _, err := svc.Create(ctx, Input{Text: text, DueDate: "01/02/2026"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	got, err := svc.Suggest(ctx, "Enviar relatório")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	found := false
	for _, s := range got {
		if s == "relatório" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected history word in suggestions, got %v", got)
	}
}

func TestMaskDate(t *testing.T) {
	svc, _ := setupService(t)

	partial := svc.MaskDate("0502")
	if partial.Formatted != "05/02" || partial.Complete || partial.Valid {
		t.Fatalf("unexpected partial result: %#v", partial)
	}
	full := svc.MaskDate("05a02b2026")
	if full.Formatted != "05/02/2026" || !full.Complete || !full.Valid {
		t.Fatalf("unexpected full result: %#v", full)
	}
	bad := svc.MaskDate("30022024")
	if !bad.Complete || bad.Valid {
		t.Fatalf("30/02 must be complete but invalid: %#v", bad)
	}
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{"": StatusAll, "Pending": StatusPending, "done": StatusDone, "all": StatusAll} {
		got, ok := ParseStatus(in)
		if !ok || got != want {
			t.Fatalf("ParseStatus(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := ParseStatus("later"); ok {
		t.Fatal("expected unknown status to fail")
	}
}

func datemaskFormat(t time.Time) string {
	return t.Format("02/01/2006")
}
