package suggest

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

const categoryPrefix = "Categoria: "

var actionBank = []string{
	"Lembre-se de",
	"Verificar",
	"Agendar",
	"Comprar",
	"Ligar para",
	"Enviar",
	"Pagar",
	"Revisar",
	"Preparar",
	"Organizar",
	"Confirmar",
	"Responder",
	"Marcar",
	"Buscar",
	"Entregar",
	"Estudar",
	"Renovar",
	"Cancelar",
	"Atualizar",
	"Finalizar",
}

var patternBank = []string{
	"Reunião com",
	"Prazo para",
	"Consulta médica",
	"Aniversário de",
	"Pagamento de",
	"Entrega de",
	"Compromisso com",
	"Lembrete de",
	"Tarefa de",
	"Visita a",
	"Ligação para",
	"Exame de",
	"Viagem para",
	"Renovação de",
	"Apresentação de",
}

var categoryBank = []string{
	"Trabalho",
	"Saúde",
	"Pessoal",
	"Finanças",
	"Estudos",
	"Casa",
	"Família",
	"Compras",
	"Lazer",
	"Viagem",
}

// entry is one bank phrase: what is shown and what input is matched against.
type entry struct {
	display string
	key     string
}

var (
	allEntries []entry
	prefixTrie *patricia.Trie
)

func init() {
	allEntries = make([]entry, 0, len(actionBank)+len(patternBank)+len(categoryBank))
	for _, p := range actionBank {
		allEntries = append(allEntries, entry{display: p, key: strings.ToLower(p)})
	}
	for _, p := range patternBank {
		allEntries = append(allEntries, entry{display: p, key: strings.ToLower(p)})
	}
	for _, c := range categoryBank {
		allEntries = append(allEntries, entry{display: renderCategory(c), key: strings.ToLower(c)})
	}

	prefixTrie = patricia.NewTrie()
	for i, e := range allEntries {
		key := patricia.Prefix(e.key)
		if existing, ok := prefixTrie.Get(key).([]int); ok {
			prefixTrie.Set(key, append(existing, i))
			continue
		}
		prefixTrie.Insert(key, []int{i})
	}
}

func renderCategory(name string) string {
	return categoryPrefix + name
}

// Actions, Patterns and Categories return copies of the phrase banks.
func Actions() []string { return append([]string(nil), actionBank...) }

func Patterns() []string { return append([]string(nil), patternBank...) }

func Categories() []string { return append([]string(nil), categoryBank...) }

// Defaults is the union of the three banks with categories rendered, in bank order.
func Defaults() []string {
	out := make([]string, len(allEntries))
	for i, e := range allEntries {
		out[i] = e.display
	}
	return out
}
