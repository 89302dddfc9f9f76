package suggest

import (
	"math/rand/v2"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func TestSuggestBlankInputSamplesBanks(t *testing.T) {
	bank := make(map[string]bool)
	for _, s := range Defaults() {
		bank[s] = true
	}
	for _, in := range []string{"", "   ", "\t"} {
		got := Suggest(nil, in)
		if len(got) != Limit {
			t.Fatalf("Suggest(%q) returned %d items, want %d", in, len(got), Limit)
		}
		seen := make(map[string]bool)
		for _, s := range got {
			if !bank[s] {
				t.Fatalf("suggestion %q is not from the banks", s)
			}
			if seen[s] {
				t.Fatalf("duplicate suggestion %q in %v", s, got)
			}
			seen[s] = true
		}
	}
}

func TestSuggestBlankInputDeterministicWithSeed(t *testing.T) {
	a := New(WithRand(rand.New(rand.NewPCG(1, 2)))).Suggest(nil, "")
	b := New(WithRand(rand.New(rand.NewPCG(1, 2)))).Suggest(nil, "")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different samples: %v vs %v", a, b)
	}

	order := rand.New(rand.NewPCG(1, 2)).Perm(len(Defaults()))
	defaults := Defaults()
	want := make([]string, 0, Limit)
	for _, i := range order[:Limit] {
		want = append(want, defaults[i])
	}
	if !reflect.DeepEqual(a, want) {
		t.Fatalf("sample got %v want %v", a, want)
	}
}

func TestSuggestPrefixPass(t *testing.T) {
	got := Suggest(nil, "Reu")
	if !reflect.DeepEqual(got, []string{"Reunião com"}) {
		t.Fatalf("unexpected suggestions: %v", got)
	}
	for _, s := range got {
		if !strings.HasPrefix(strings.ToLower(s), "reu") {
			t.Fatalf("suggestion %q does not start with reu", s)
		}
	}
}

func TestSuggestPrefixPassKeepsBankOrder(t *testing.T) {
	got := Suggest(nil, "pa")
	want := []string{"Pagar", "Pagamento de"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSuggestPrefixPassUsesOnlyTail(t *testing.T) {
	got := Suggest(nil, "reunião ag")
	if !reflect.DeepEqual(got, []string{"Agendar"}) {
		t.Fatalf("unexpected suggestions: %v", got)
	}
}

func TestSuggestCategoryPrefixRendersCategory(t *testing.T) {
	got := Suggest(nil, "saú")
	if !reflect.DeepEqual(got, []string{"Categoria: Saúde"}) {
		t.Fatalf("unexpected suggestions: %v", got)
	}
}

func TestSuggestContextPassCategory(t *testing.T) {
	got := Suggest(nil, "trabalhos x")
	if !reflect.DeepEqual(got, []string{"Categoria: Trabalho"}) {
		t.Fatalf("unexpected suggestions: %v", got)
	}
}

func TestSuggestFrequencyFromHistory(t *testing.T) {
	history := []string{"Pagar conta de luz", "Pagar conta de água"}
	got := Suggest(history, "conta")
	if !reflect.DeepEqual(got, []string{"conta"}) {
		t.Fatalf("unexpected suggestions: %v", got)
	}
}

func TestSuggestMergesAndTruncates(t *testing.T) {
	history := []string{"casa casa compras", "casa lazer"}
	got := Suggest(history, "casa comprasx lazer re")
	if len(got) > Limit {
		t.Fatalf("more than %d suggestions: %v", Limit, got)
	}
	seen := make(map[string]bool)
	for _, s := range got {
		if seen[s] {
			t.Fatalf("duplicate %q in %v", s, got)
		}
		seen[s] = true
	}
	want := []string{"Categoria: Casa", "Categoria: Compras", "Categoria: Lazer", "casa", "compras"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestSuggestSingleCharacterTail(t *testing.T) {
	if got := Suggest(nil, "z"); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
	if got := Suggest(nil, "r"); len(got) != 0 {
		t.Fatalf("single character tail must skip prefix pass, got %v", got)
	}
	if got := Suggest(nil, "qwerty"); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestTopWords(t *testing.T) {
	texts := []string{"Pagar conta de luz", "pagar CONTA de água", "ir ao banco luz"}
	got := TopWords(texts, 3)
	want := []string{"pagar", "conta", "luz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if len(TopWords(texts, 0)) != 0 {
		t.Fatal("expected empty result for n=0")
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	e := New(WithRand(rand.New(rand.NewPCG(7, 7))))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := e.Suggest(nil, ""); len(got) != Limit {
				t.Errorf("unexpected sample size %d", len(got))
			}
		}()
	}
	wg.Wait()
}
