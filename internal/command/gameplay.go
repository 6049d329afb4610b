package command

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/state"
)

var helpLines = []string{
	"Available commands:",
	"- ALLOCATE_AP <amount> FOR MINER_TEMPLATE: Allocate AP to build new miners.",
	"  (During miner setup phase, DEFINE_MINER_TYPE & DEPLOY_MINER_SCRIPT follow)",
	"- SYNTHESIZE <Resource1> <Resource2> AS <NewModule>: Combine resources. (Costs 1 of each resource)",
	"- INJECT <Module> INTO <TargetArea>: Apply a module to a target area (e.g., CORE_NEXUS).",
	"- OBSERVE <TargetArea>: Get information about an area. May yield components or data.",
	"- SELL <Resource> <Amount>: Sell resources for AP.",
	"- LIST_MINERS: Show active miners.",
	"- LIST_MODULES: Show synthesized modules.",
	"- LIST_RESOURCES: Show current resource counts.",
	"- LIST_TARGET_AREAS: Show available target areas for INJECT/OBSERVE.",
	"- MINER_TYPES: Toggle display of available miner types and unlock levels.",
	"- CRAFT_THE_END: Attempt to complete your ultimate purpose.",
	"- SAVE_GAME: Saves your current progress.",
	"- LOAD_GAME: Loads progress from the save slot.",
	"- TOGGLE_OBSERVE_AI: Toggles the use of AI for OBSERVE command descriptions.",
	"- CLEAR: Clears the terminal output.",
}

func (in *Interpreter) handleHelp(ctx context.Context, line string) {
	for _, l := range helpLines {
		in.Display.Message(display.Info, l)
	}
}

func (in *Interpreter) handleUnknown(ctx context.Context, line string) {
	name := strings.ToLower(strings.Fields(line)[0])
	in.Display.Message(display.Error, fmt.Sprintf("Unknown command: %s. Type 'help' for a list of commands.", name))
	in.Display.Message(display.Voice, "Command not recognized.")
}

func (in *Interpreter) handleSynthesize(ctx context.Context, line string) {
	m, ok := match(synthesizeGrammar, line)
	if !ok {
		in.Display.Message(display.Error, "Invalid SYNTHESIZE format. Use: SYNTHESIZE <Resource1> <Resource2> AS <NewModule>")
		return
	}
	r1, r2, name := m["r1"], m["r2"], m["name"]

	if r1 == r2 {
		if have := in.Store.Resource(r1); have < 2 {
			in.Display.Message(display.Error, fmt.Sprintf("Error: Insufficient resources. Need 2 %s (Have: %d).", r1, have))
			return
		}
	} else if in.Store.Resource(r1) < 1 || in.Store.Resource(r2) < 1 {
		in.Display.Message(display.Error, fmt.Sprintf("Error: Insufficient resources. Need 1 %s (Have: %d) and 1 %s (Have: %d).",
			r1, in.Store.Resource(r1), r2, in.Store.Resource(r2)))
		return
	}

	in.Store.RemoveResource(r1, 1)
	in.Store.RemoveResource(r2, 1)
	in.Store.PutModule(state.Module{R1: r1, R2: r2, Name: name})
	in.updateStatus()
	in.Display.Message(display.System, fmt.Sprintf("Successfully synthesized %s from %s and %s.", name, r1, r2))
	in.Display.Message(display.Voice, "Synthesis complete.")
	in.Engine.GainXP(gamedata.XPSynthesize)
}

func (in *Interpreter) unknownArea(area string) {
	in.Display.Message(display.Error, fmt.Sprintf("Error: Target area %q does not exist. Valid areas: %s",
		area, strings.Join(in.Store.Catalog().AreaNames(), ", ")))
}

func (in *Interpreter) handleInject(ctx context.Context, line string) {
	m, ok := match(injectGrammar, line)
	if !ok {
		in.Display.Message(display.Error, "Invalid INJECT format. Use: INJECT <Module> INTO <TargetArea>")
		return
	}
	module, area := m["module"], m["area"]

	if _, ok := in.Store.Module(module); !ok {
		in.Display.Message(display.Error, fmt.Sprintf("Error: Module %q not found or not synthesized.", module))
		return
	}
	if !in.Store.AddComponent(area, module) {
		in.unknownArea(area)
		return
	}
	in.Store.ResetAreaStatus(area)
	in.Display.Message(display.System, fmt.Sprintf("Successfully injected %s into %s. The area feels... reconfigured.", module, area))
	in.Display.Message(display.Voice, "Injection successful. Reality shifts. New potential discovered.")
	in.Engine.GainXP(gamedata.XPInject)
}

func (in *Interpreter) handleObserve(ctx context.Context, line string) {
	m, ok := match(observeGrammar, line)
	if !ok {
		in.Display.Message(display.Error, "Invalid OBSERVE format. Use: OBSERVE <TargetArea>")
		return
	}
	name := m["area"]
	area, ok := in.Store.Area(name)
	if !ok {
		in.unknownArea(name)
		return
	}

	now := in.Now()
	if last, ok := in.Store.LastObserved(name); ok {
		if elapsed := now.Sub(last); elapsed < gamedata.ObserveCooldown {
			remaining := int(math.Ceil((gamedata.ObserveCooldown - elapsed).Seconds()))
			in.Display.Message(display.Error, fmt.Sprintf("Area %s is still stabilizing from the last observation. Try again in %d seconds.", name, remaining))
			in.Display.Message(display.Voice, "Observation conduit recharging.")
			return
		}
	}
	in.Store.SetLastObserved(name, now)

	description := fmt.Sprintf("Observing %s: %s", name, area.Description)
	if len(area.Components) > 0 {
		description += fmt.Sprintf(" Current components: %s.", strings.Join(area.Components, ", "))
	} else {
		description += " It is currently unaltered."
	}
	in.Display.Message(display.System, description)
	in.Narrator.Observe(ctx, name)

	if in.Store.AreaStatus(name) == state.StatusNothingToFind {
		in.Display.Message(display.System, "The area remains inert to deep scanning. Further alteration via INJECT may be required to uncover new phenomena.")
		in.Display.Message(display.Voice, "The void stares back...unchanged.")
		return
	}

	roll := in.Rand.Float64()
	switch {
	case roll < gamedata.EndGameItemChance:
		item := in.pickEndGameItem()
		in.Store.AddResource(item, 1)
		in.updateStatus()
		in.Display.Message(display.Voice, fmt.Sprintf("From the observation, you've extracted a [%s]! It resonates with an ancient pattern.", item))
		in.Engine.GainXP(gamedata.XPEndGameFind)
	case roll < gamedata.CommonFindChance:
		finds := in.Store.Catalog().ObservationFinds()
		if len(finds) == 0 {
			return
		}
		item := finds[in.Rand.Intn(len(finds))]
		in.Store.AddResource(item, 1)
		in.updateStatus()
		in.Display.Message(display.System, fmt.Sprintf("You found some [%s] during your observation. It might be valuable.", item))
		in.Engine.GainXP(gamedata.XPCommonFind)
	default:
		in.Display.Message(display.System, "The observation yields no new tangible components this time, only further understanding. The area seems depleted of immediate secrets.")
		in.Store.SetAreaStatus(name, state.StatusNothingToFind)
	}
}

// pickEndGameItem prefers an end-game item the player does not hold yet.
func (in *Interpreter) pickEndGameItem() string {
	items := in.Store.Catalog().EndGameItems()
	var needed []string
	for _, item := range items {
		if in.Store.Resource(item) < 1 {
			needed = append(needed, item)
		}
	}
	if len(needed) > 0 {
		return needed[in.Rand.Intn(len(needed))]
	}
	return items[in.Rand.Intn(len(items))]
}

func (in *Interpreter) handleSell(ctx context.Context, line string) {
	m, ok := match(sellGrammar, line)
	if !ok {
		in.Display.Message(display.Error, "Invalid SELL format. Use: SELL <ResourceName> <Amount>")
		return
	}
	resource := m["resource"]
	amount, err := strconv.Atoi(m["amount"])
	if err != nil || amount <= 0 {
		in.Display.Message(display.Error, "Error: Invalid amount specified for SELL.")
		return
	}

	if held := in.Store.Resource(resource); held < amount {
		in.Display.Message(display.Error, fmt.Sprintf("Error: Insufficient %s. You have %d.", resource, held))
		return
	}
	offer := in.Store.Catalog().Sellable(resource)
	if offer == nil {
		in.Display.Message(display.Error, fmt.Sprintf("Error: Resource %s cannot be sold.", resource))
		in.Display.Message(display.Voice, "That resource has no market value currently.")
		return
	}
	if amount < offer.LotSize {
		in.Display.Message(display.Error, fmt.Sprintf("Error: You must sell at least %d units of %s at a time.", offer.LotSize, resource))
		return
	}

	ap, sold := offer.Quote(amount)
	if ap <= 0 {
		in.Display.Message(display.Info, fmt.Sprintf("Not enough %s to form a complete lot for selling. Sold 0.", resource))
		return
	}
	in.Store.RemoveResource(resource, sold)
	in.Store.AddAP(ap)
	in.updateStatus()
	in.Display.Message(display.System, fmt.Sprintf("Sold %d %s for %d AP.", sold, resource, ap))
	in.Display.Message(display.Voice, "Transaction complete. AP credited.")
}

func (in *Interpreter) handleToggleObserveAI(ctx context.Context, line string) {
	if !in.Narrator.Enabled() {
		in.Display.Message(display.Error, "Local AI system is disabled in the configuration. Observe AI toggle has no effect.")
		in.Display.Message(display.Voice, "AI core functionality is offline. Cannot toggle.")
		return
	}
	in.Store.SetUseAIForObserve(!in.Store.UseAIForObserve())
	if in.Store.UseAIForObserve() {
		in.Display.Message(display.System, "Observe AI has been ENABLED. Observations will now use AI for descriptions.")
		in.Display.Message(display.Voice, "Cognitive enhancers online.")
	} else {
		in.Display.Message(display.System, "Observe AI has been DISABLED. Observations will use standard protocols for descriptions.")
		in.Display.Message(display.Voice, "Cognitive enhancers offline.")
	}
}

type requirement struct {
	name string
	need int
	have int
}

func (r requirement) met() bool { return r.have >= r.need }

func (r requirement) line() string {
	return fmt.Sprintf("- %d %s (Current: %d)", r.need, r.name, r.have)
}

// handleCraftTheEnd checks every end-game item and every mineable resource.
// Nothing is consumed unless all requirements are met.
func (in *Interpreter) handleCraftTheEnd(ctx context.Context, line string) {
	catalog := in.Store.Catalog()

	var items, mined []requirement
	complete := true
	for _, item := range catalog.EndGameItems() {
		r := requirement{name: item, need: 1, have: in.Store.Resource(item)}
		complete = complete && r.met()
		items = append(items, r)
	}
	for _, res := range catalog.MineableResources() {
		r := requirement{name: res, need: gamedata.EndGameResourceQuota, have: in.Store.Resource(res)}
		complete = complete && r.met()
		mined = append(mined, r)
	}

	if !complete {
		in.Display.Message(display.Info, "The final pattern is incomplete. The following are required to CRAFT THE END:")
		in.reportRequirements("Observation-derived components:", items)
		in.reportRequirements("Mined resources:", mined)
		in.Display.Message(display.Voice, "The final sequence cannot be initiated without all components.")
		return
	}

	in.Display.Message(display.Voice, "The final components align. The ritual of creation commences...")
	in.Display.Message(display.Voice, "Reality fractures, then reforms to your grand design. The digital ether sings your triumph.")
	in.Display.Message(display.System, "THE END IS CRAFTED. YOU HAVE FULFILLED YOUR PURPOSE.")
	in.Display.Message(display.Info, "Congratulations! You have won!")
	in.Store.SetPhase(state.PhaseGameOver)
	in.Display.DisableInput()
	in.Generator.Stop()

	for _, r := range append(mined, items...) {
		in.Store.RemoveResource(r.name, r.need)
	}
	in.updateStatus()
}

func (in *Interpreter) reportRequirements(heading string, reqs []requirement) {
	if len(reqs) == 0 {
		return
	}
	in.Display.Message(display.Info, heading)
	for _, r := range reqs {
		kind := display.Error
		if r.met() {
			kind = display.System
		}
		in.Display.Message(kind, r.line())
	}
}

func (in *Interpreter) handleClear(ctx context.Context, line string) {
	in.Display.ClearTranscript()
	in.Display.Message(display.System, "Terminal output cleared.")
	in.Display.Message(display.Voice, "Display buffer purged.")
}
