package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/samdwyer/cmdcrafter/internal/display"
)

func (in *Interpreter) handleListMiners(ctx context.Context, line string) {
	miners := in.Store.Miners()
	if len(miners) == 0 {
		in.Display.Message(display.Info, "No active AI Miners.")
		return
	}
	in.Display.Message(display.Info, "Active AI Miners:")
	for _, m := range miners {
		in.Display.Message(display.Info, fmt.Sprintf("- %s (Type: %s, Generates: %s)", m.Name, m.Type, m.Resource))
	}
}

func (in *Interpreter) handleListModules(ctx context.Context, line string) {
	names := in.Store.ModuleNames()
	if len(names) == 0 {
		in.Display.Message(display.Info, "No modules synthesized yet.")
		return
	}
	in.Display.Message(display.Info, "Synthesized Modules:")
	for _, name := range names {
		m, _ := in.Store.Module(name)
		in.Display.Message(display.Info, fmt.Sprintf("- %s (Components: %s, %s)", name, m.R1, m.R2))
	}
}

func (in *Interpreter) handleListResources(ctx context.Context, line string) {
	in.updateStatus()
	resources := in.Store.Resources()
	if len(resources) == 0 {
		in.Display.Message(display.Info, "No resources generated yet.")
		return
	}
	in.Display.Message(display.Info, "Current Resources:")
	for _, name := range sortedKeys(resources) {
		in.Display.Message(display.Info, fmt.Sprintf("- %s: %d", name, resources[name]))
	}
}

func (in *Interpreter) handleListTargetAreas(ctx context.Context, line string) {
	in.Display.Message(display.Info, "Available Target Areas for INJECT/OBSERVE:")
	for _, a := range in.Store.Catalog().Areas() {
		in.Display.Message(display.Info, fmt.Sprintf("- %s: %s", a.Name, a.Description))
	}
}

func (in *Interpreter) handleMinerTypes(ctx context.Context, line string) {
	if in.Display.MinerTypesVisible() {
		in.Display.HideMinerTypes()
		in.Display.Message(display.Info, "Hiding available miner types.")
		return
	}
	in.Display.ShowMinerTypes(in.Store.Level())
	in.Display.Message(display.Info, "Showing available miner types. Use 'miner_types' again to hide.")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
