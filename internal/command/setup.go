package command

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/gamedata"
	"github.com/samdwyer/cmdcrafter/internal/state"
)

// DeleteDelay is how long the delete-system32 ending takes to land.
const DeleteDelay = 1500 * time.Millisecond

// GameplayCommands is the command list shown on entering gameplay.
var GameplayCommands = []string{
	"SYNTHESIZE", "INJECT", "OBSERVE", "SELL", "LIST_MINERS", "LIST_MODULES",
	"LIST_RESOURCES", "LIST_TARGET_AREAS", "MINER_TYPES", "HELP", "CRAFT_THE_END",
	"SAVE_GAME", "LOAD_GAME", "TOGGLE_OBSERVE_AI", "CLEAR",
}

const (
	autoCoalMiner = "auto_coal_miner.sh"
	autoXPMiner   = "auto_xp_miner.sh"
)

var whitespace = regexp.MustCompile(`\s+`)

func (in *Interpreter) announceGameplayCommands() {
	in.Display.Message(display.Info, fmt.Sprintf("Available commands: %s.", strings.Join(GameplayCommands, ", ")))
}

func (in *Interpreter) unlockedTypes() string {
	return strings.Join(in.Store.Catalog().UnlockedMinerTypes(in.Store.Level()), ", ")
}

func (in *Interpreter) handleInitialChoice(ctx context.Context, line string) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "delete system32":
		in.Display.Message(display.Voice, "Attempting to delete system32... Critical error. System integrity compromised. Termination imminent.")
		in.Display.DisableInput()
		in.Scheduler.After(DeleteDelay, func() {
			in.Display.Message(display.Error, "FATAL ERROR: Core system file deletion attempted. Program terminated.")
			in.Store.SetPhase(state.PhaseGameOver)
			in.Display.DisableInput()
		})
	case "craft the end":
		in.Display.Message(display.Voice, fmt.Sprintf("You have chosen to craft the end. Your preordained purpose. You have %d AP. You must initiate resource generation. Each AI Miner costs %d AP.",
			in.Store.AP(), gamedata.MinerCost))
		in.Display.Message(display.Info, "To begin, allocate AP for your first miner. Use: ALLOCATE_AP <amount> FOR MINER_TEMPLATE")
		in.Store.SetPhase(state.PhaseSetupAllocate)
	case "skip_intro":
		in.quickStart()
	default:
		in.Display.Message(display.Error, "Invalid choice. Type 'craft the end', 'delete system32', or 'SKIP_INTRO'.")
	}
}

// quickStart provisions up to two starter miners, greedily, from the
// available AP and jumps to gameplay.
func (in *Interpreter) quickStart() {
	in.Display.Message(display.System, "Executing quick start protocol...")

	var deployed []string
	deploy := func(name, minerType string) {
		def := in.Store.Catalog().MinerType(minerType)
		if def == nil {
			return
		}
		in.Store.AddMiner(state.Miner{Name: name, Type: def.Name, Resource: def.Resource, Rate: gamedata.MinerRate})
		deployed = append(deployed, name)
	}

	switch ap := in.Store.AP(); {
	case ap >= 2*gamedata.MinerCost:
		in.Store.SpendAP(2 * gamedata.MinerCost)
		deploy(autoCoalMiner, gamedata.MinerCoal)
		deploy(autoXPMiner, gamedata.MinerXP)
	case ap >= gamedata.MinerCost:
		in.Store.SpendAP(gamedata.MinerCost)
		deploy(autoCoalMiner, gamedata.MinerCoal)
	}

	in.Store.SetPhase(state.PhaseGameplay)
	if len(in.Store.Miners()) > 0 {
		in.Generator.Start()
	}
	in.Engine.GainXP(gamedata.XPQuickStart)
	in.Display.HideMinerTypes()
	in.updateStatus()

	if len(deployed) > 0 {
		in.Display.Message(display.System, fmt.Sprintf("Quick start complete. Basic miner(s) [%s] deployed and operational.", strings.Join(deployed, ", ")))
	} else {
		in.Display.Message(display.System, "Quick start complete. Insufficient initial AP for automated miner deployment.")
	}
	in.Display.Message(display.Voice, "All systems nominal. Awaiting directives.")
	in.announceGameplayCommands()
}

func (in *Interpreter) handleAllocateAP(ctx context.Context, line string) {
	m, ok := match(allocateGrammar, line)
	if !ok {
		in.Display.Message(display.Error, "Invalid command format. Use: ALLOCATE_AP <amount> FOR MINER_TEMPLATE")
		return
	}
	amount, err := strconv.Atoi(m["amount"])
	if err != nil {
		in.Display.Message(display.Error, "Error: Invalid amount specified for ALLOCATE_AP.")
		return
	}
	if amount < gamedata.MinerCost {
		in.Display.Message(display.Error, fmt.Sprintf("Error: Allocation must be at least %d AP for one miner.", gamedata.MinerCost))
		return
	}
	if amount > in.Store.AP() {
		in.Display.Message(display.Error, "Error: Insufficient AP for this allocation.")
		return
	}

	in.Store.SetMinerOrder(state.MinerOrder{APAllocated: amount})
	in.Store.SpendAP(amount)
	in.updateStatus()
	in.Display.Message(display.Voice, fmt.Sprintf("AP %d allocated. Define the miner type. Use: DEFINE_MINER_TYPE \"TypeName\"", amount))
	in.Display.Message(display.Info, fmt.Sprintf("Available Miner Types: %s. (Cost: %d AP per miner from allocation).", in.unlockedTypes(), gamedata.MinerCost))
	in.Display.ShowMinerTypes(in.Store.Level())
	in.Store.SetPhase(state.PhaseSetupDefineType)
}

func (in *Interpreter) handleDefineMinerType(ctx context.Context, line string) {
	m, ok := match(defineGrammar, line)
	if !ok {
		in.Display.Message(display.Error, `Invalid command format. Use: DEFINE_MINER_TYPE "TypeName"`)
		return
	}
	typeName := m["type"]
	def := in.Store.Catalog().MinerType(typeName)
	if def == nil {
		in.Display.Message(display.Error, fmt.Sprintf("Error: Unknown miner type %q. Available types: %s", typeName, in.unlockedTypes()))
		in.Display.Message(display.Voice, "Unknown miner type. Please check available types.")
		return
	}
	if !def.Unlocked(in.Store.Level()) {
		in.Display.Message(display.Error, fmt.Sprintf("Error: Miner type %q requires Level %d. Your current level is %d.", typeName, def.LevelRequired, in.Store.Level()))
		in.Display.Message(display.Voice, "That miner type is currently beyond your capabilities. Increase your level.")
		return
	}

	order, ok := in.Store.MinerOrder()
	if !ok || order.APAllocated < gamedata.MinerCost {
		in.Display.Message(display.Error, "Error: Not enough AP allocated for this miner. Please ALLOCATE_AP first.")
		in.Store.ClearMinerOrder()
		in.Store.SetPhase(state.PhaseGameplay)
		in.Display.HideMinerTypes()
		return
	}

	in.Store.SetMinerOrder(state.MinerOrder{Type: def.Name, APAllocated: order.APAllocated - gamedata.MinerCost})
	in.Display.Message(display.Voice, fmt.Sprintf("Miner type %q defined. Deploy its operational script. Use: DEPLOY_MINER_SCRIPT <miner_name.sh> OR DEPLOY_MINER_SCRIPT AUTO", typeName))
	in.Store.SetPhase(state.PhaseSetupDeployScript)
}

// autoMinerName returns the first free <type>_miner_<n>.sh name.
func (in *Interpreter) autoMinerName(minerType string) string {
	base := whitespace.ReplaceAllString(strings.ToLower(minerType), "_")
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s_miner_%d.sh", base, n)
		if !in.Store.HasMiner(name) {
			return name
		}
	}
}

func (in *Interpreter) handleDeployMinerScript(ctx context.Context, line string) {
	m, ok := match(deployGrammar, line)
	if !ok {
		in.Display.Message(display.Error, `Invalid command format. Use: DEPLOY_MINER_SCRIPT <miner_name.sh> or DEPLOY_MINER_SCRIPT AUTO, or type "done_setup".`)
		return
	}

	order, ok := in.Store.MinerOrder()
	if !ok || order.Type == "" {
		in.Display.Message(display.Error, "Error: Miner type not defined. Please DEFINE_MINER_TYPE first.")
		in.Store.SetPhase(state.PhaseSetupDefineType)
		return
	}
	def := in.Store.Catalog().MinerType(order.Type)
	if def == nil {
		in.Display.Message(display.Error, "Error: Miner type not defined. Please DEFINE_MINER_TYPE first.")
		in.Store.SetPhase(state.PhaseSetupDefineType)
		return
	}

	script := m["script"]
	if strings.EqualFold(script, "AUTO") {
		script = in.autoMinerName(order.Type)
		in.Display.Message(display.System, "Auto-generating miner name: "+script)
	} else if in.Store.HasMiner(script) {
		in.Display.Message(display.Error, fmt.Sprintf("Error: A miner with the name %q already exists. Choose a unique name.", script))
		return
	}

	in.Store.AddMiner(state.Miner{Name: script, Type: order.Type, Resource: def.Resource, Rate: gamedata.MinerRate})
	in.Display.Message(display.System, fmt.Sprintf("AI Miner '%s' (Type: %s) deployed. Now generating %s.", script, order.Type, def.Resource))
	in.Display.Message(display.Voice, "AI Miner deployed and online.")
	in.Engine.GainXP(gamedata.XPDeployMiner)
	in.Generator.Start()

	remaining := order.APAllocated
	if remaining >= gamedata.MinerCost {
		in.Store.SetMinerOrder(state.MinerOrder{APAllocated: remaining})
		in.Display.Message(display.Info, fmt.Sprintf("You have %d AP remaining from your allocation. You can define another miner.", remaining))
		in.Display.Message(display.Voice, "You have remaining AP from allocation for more miners. Define the next miner type to proceed.")
		in.Store.SetPhase(state.PhaseSetupDefineType)
		in.updateStatus()
		return
	}

	if remaining > 0 {
		in.Store.AddAP(remaining)
	}
	in.Store.ClearMinerOrder()
	if in.Store.AP() >= gamedata.MinerCost {
		in.Display.Message(display.Info, fmt.Sprintf("Miner setup complete. You have %d AP remaining. You can allocate more AP for miners or proceed with other commands.", in.Store.AP()))
		in.Display.Message(display.Voice, "Miner setup complete. You can now allocate more AP or use gameplay commands.")
	} else {
		in.Display.Message(display.Info, fmt.Sprintf("Miner setup complete. You have %d AP remaining. Not enough AP for another miner currently.", in.Store.AP()))
		in.Display.Message(display.Voice, "Miner setup complete. Awaiting further commands.")
	}
	in.Store.SetPhase(state.PhaseGameplay)
	in.Display.HideMinerTypes()
	in.announceGameplayCommands()
	in.updateStatus()
}

func (in *Interpreter) handleDoneSetup(ctx context.Context, line string) {
	if _, ok := match(doneSetupGrammar, line); !ok {
		in.Display.Message(display.Error, `Invalid command format. Use: DEPLOY_MINER_SCRIPT <miner_name.sh> or DEPLOY_MINER_SCRIPT AUTO, or type "done_setup".`)
		return
	}
	if order, ok := in.Store.MinerOrder(); ok && order.APAllocated > 0 {
		in.Store.AddAP(order.APAllocated)
		in.Display.Message(display.System, fmt.Sprintf("Refunded %d AP from current allocation.", order.APAllocated))
	}
	in.Store.ClearMinerOrder()
	in.updateStatus()
	in.Store.SetPhase(state.PhaseGameplay)
	in.Display.HideMinerTypes()
	in.Display.Message(display.Voice, "Setup phase concluded. Entering main operational loop.")
	in.announceGameplayCommands()
}
