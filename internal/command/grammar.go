package command

import (
	"regexp"
	"strings"
)

// Command grammars. Keywords are case-insensitive; captured names keep the
// case the player typed.
var (
	allocateGrammar   = regexp.MustCompile(`(?i)^ALLOCATE_AP (?P<amount>\d+) FOR MINER_TEMPLATE$`)
	defineGrammar     = regexp.MustCompile(`(?i)^DEFINE_MINER_TYPE "(?P<type>[^"]+)"$`)
	deployGrammar     = regexp.MustCompile(`^(?i:DEPLOY_MINER_SCRIPT)\s+(?P<script>(?i:AUTO)|\S+\.sh)$`)
	doneSetupGrammar  = regexp.MustCompile(`(?i)^done_setup$`)
	synthesizeGrammar = regexp.MustCompile(`(?i)^SYNTHESIZE (?P<r1>\w+) (?P<r2>\w+) AS (?P<name>\w+)$`)
	injectGrammar     = regexp.MustCompile(`(?i)^INJECT (?P<module>\w+) INTO (?P<area>\w+)$`)
	observeGrammar    = regexp.MustCompile(`(?i)^OBSERVE (?P<area>\w+)$`)
	sellGrammar       = regexp.MustCompile(`(?i)^SELL (?P<resource>\w+) (?P<amount>\d+)$`)
)

// match applies a grammar to a trimmed command line and returns its named
// captures.
func match(re *regexp.Regexp, line string) (map[string]string, bool) {
	m := re.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, false
	}
	groups := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}
	return groups, true
}
