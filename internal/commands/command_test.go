package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add 05/02/2026 pagar aluguel", TypeAdd},
		{"done 3", TypeDone},
		{"/undo #3", TypeUndo},
		{"delete 12", TypeDelete},
		{"show pending cat:Trabalho", TypeShow},
		{"category Saúde #0a0", TypeCategory},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddMasksDate(t *testing.T) {
	cmd, err := Parse("add 05022026 pagar   aluguel")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.DueDate != "05/02/2026" || cmd.Add.Text != "pagar aluguel" {
		t.Fatalf("unexpected add args: %+v", *cmd.Add)
	}

	for _, in := range []string{"add 05/02 pagar", "add 05/02/2026", "add"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseShowAndCategoryArgs(t *testing.T) {
	cmd, err := Parse("show ALL cat:Vida Pessoal")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Show.Status != "all" || cmd.Show.Category != "Vida Pessoal" {
		t.Fatalf("unexpected show args: %+v", *cmd.Show)
	}

	if _, err := Parse("show later"); err == nil {
		t.Fatal("expected error for unknown status")
	}

	cmd, err = Parse("category Casa de praia #336699")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Category.Name != "Casa de praia" || cmd.Category.Color != "#336699" {
		t.Fatalf("unexpected category args: %+v", *cmd.Category)
	}
	if _, err := Parse("category #fff"); err == nil {
		t.Fatal("expected error for missing category name")
	}
}

func TestParseBadID(t *testing.T) {
	for _, in := range []string{"done", "done x", "delete 0", "undo 1 2"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}

	_, err = Parse("  / ")
	if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/done 7")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Done: func(a TargetArgs) (Result, error) {
			called = true
			if a.ID != 7 {
				t.Fatalf("unexpected id: %d", a.ID)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show pending")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
