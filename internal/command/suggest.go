package command

import (
	"strconv"
	"strings"

	"github.com/samdwyer/cmdcrafter/internal/state"
)

// MaxSuggestions caps the completions returned by Suggest.
const MaxSuggestions = 5

var (
	initialChoices = []string{"craft the end", "delete system32", "LOAD_GAME", "SKIP_INTRO"}
	persistence    = []string{"LOAD_GAME", "SAVE_GAME"}
)

func (in *Interpreter) commandPool(phase state.Phase) []string {
	var pool []string
	switch phase {
	case state.PhaseSetupAllocate:
		pool = []string{"ALLOCATE_AP"}
	case state.PhaseSetupDefineType:
		pool = []string{"DEFINE_MINER_TYPE"}
	case state.PhaseSetupDeployScript:
		pool = []string{"DEPLOY_MINER_SCRIPT", "done_setup"}
	default:
		pool = append([]string{"ALLOCATE_AP"}, GameplayCommands...)
	}
	return unique(append(pool, persistence...))
}

// Suggest returns up to MaxSuggestions completions for partially typed
// input. It is a typing aid only; handlers still validate every command.
func (in *Interpreter) Suggest(input string) []string {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	phase := in.Store.Phase()

	if phase == state.PhaseAwaitingChoice {
		return limit(filterPrefix(initialChoices, normalized))
	}
	if phase == state.PhaseGameOver {
		return limit(filterPrefix([]string{"LOAD_GAME"}, normalized))
	}

	pool := in.commandPool(phase)
	parts := strings.Fields(normalized)
	raw := strings.Fields(input)
	trailing := strings.HasSuffix(input, " ")

	switch {
	case normalized == "" && phase == state.PhaseSetupAllocate:
		return []string{"ALLOCATE_AP <amount> FOR MINER_TEMPLATE"}
	case len(parts) == 0:
		return limit(pool)
	case len(parts) == 1 && !trailing:
		return limit(filterPrefix(pool, parts[0]))
	case !contains(pool, parts[0]):
		return nil
	}

	var out []string
	cmd := parts[0]
	trimmed := strings.TrimSpace(input)
	catalog := in.Store.Catalog()

	switch cmd {
	case "DEFINE_MINER_TYPE":
		if len(parts) == 1 && trailing {
			out = append(out, cmd+` "`)
		} else if len(parts) > 1 && strings.HasPrefix(parts[1], `"`) {
			partial := strings.ToUpper(input[strings.Index(input, `"`)+1:])
			for _, name := range catalog.UnlockedMinerTypes(in.Store.Level()) {
				if strings.HasPrefix(strings.ToUpper(name), partial) {
					out = append(out, cmd+` "`+name+`"`)
				}
			}
		}

	case "ALLOCATE_AP":
		switch {
		case len(parts) == 2 && trailing && isNumber(parts[1]):
			out = append(out, trimmed+" FOR MINER_TEMPLATE")
		case len(parts) == 3 && trailing && parts[2] == "FOR":
			out = append(out, trimmed+" MINER_TEMPLATE")
		case len(parts) == 1 && trailing:
			out = append(out, cmd+" <amount> FOR MINER_TEMPLATE")
		}

	case "DEPLOY_MINER_SCRIPT":
		if len(parts) == 1 && trailing {
			out = append(out, cmd+" <name.sh>", cmd+" AUTO")
		} else if len(parts) == 2 && strings.HasPrefix("AUTO", parts[1]) {
			out = append(out, cmd+" AUTO")
		}

	case "SYNTHESIZE":
		switch {
		case len(parts) == 1 && trailing:
			out = append(out, cmd+" <Resource1> <Resource2> AS <NewModule>")
		case (len(parts) == 2 || len(parts) == 3) && !trailing:
			prefix := strings.Join(raw[:len(raw)-1], " ")
			for _, res := range sortedKeys(in.Store.Resources()) {
				if strings.HasPrefix(strings.ToUpper(res), parts[len(parts)-1]) {
					out = append(out, prefix+" "+res)
				}
			}
		case len(parts) == 3 && trailing:
			out = append(out, trimmed+" AS <NewModule>")
		}

	case "INJECT":
		switch {
		case len(parts) == 1 && trailing:
			out = append(out, cmd+" <Module> INTO <TargetArea>")
		case len(parts) == 2 && !trailing:
			for _, name := range in.Store.ModuleNames() {
				if strings.HasPrefix(strings.ToUpper(name), parts[1]) {
					out = append(out, cmd+" "+name)
				}
			}
		case len(parts) == 2 && trailing:
			out = append(out, trimmed+" INTO ")
		case len(parts) == 3 && parts[2] == "INTO" && trailing:
			for _, area := range catalog.AreaNames() {
				out = append(out, trimmed+" "+area)
			}
		case len(parts) == 4 && parts[2] == "INTO":
			prefix := strings.Join(raw[:3], " ")
			for _, area := range catalog.AreaNames() {
				if strings.HasPrefix(area, parts[3]) {
					out = append(out, prefix+" "+area)
				}
			}
		}

	case "OBSERVE":
		if len(parts) == 1 && trailing {
			for _, area := range catalog.AreaNames() {
				out = append(out, cmd+" "+area)
			}
		} else if len(parts) == 2 {
			for _, area := range catalog.AreaNames() {
				if strings.HasPrefix(area, parts[1]) {
					out = append(out, cmd+" "+area)
				}
			}
		}

	case "SELL":
		switch {
		case len(parts) == 1 && trailing:
			out = append(out, cmd+" <Resource> <Amount>")
		case len(parts) == 2 && trailing:
			if offer := catalog.Sellable(raw[1]); offer != nil {
				out = append(out, trimmed+" "+strconv.Itoa(offer.LotSize))
				break
			}
			for _, s := range catalog.Sellables() {
				if strings.HasPrefix(strings.ToUpper(s.Name), parts[1]) {
					out = append(out, cmd+" "+s.Name+" <Amount>")
				}
			}
			if len(out) == 0 {
				out = append(out, trimmed+" <Amount>")
			}
		case len(parts) == 2:
			for _, s := range catalog.Sellables() {
				if strings.HasPrefix(strings.ToUpper(s.Name), parts[1]) {
					out = append(out, cmd+" "+s.Name)
				}
			}
		}
	}

	return limit(unique(out))
}

func filterPrefix(pool []string, prefix string) []string {
	var out []string
	for _, c := range pool {
		if strings.HasPrefix(strings.ToUpper(c), prefix) {
			out = append(out, c)
		}
	}
	return out
}

func contains(pool []string, name string) bool {
	for _, c := range pool {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

func unique(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := list[:0:0]
	for _, s := range list {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func limit(s []string) []string {
	if len(s) > MaxSuggestions {
		return s[:MaxSuggestions]
	}
	return s
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
