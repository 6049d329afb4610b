package command

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/cmdcrafter/internal/display"
	"github.com/samdwyer/cmdcrafter/internal/save"
	"github.com/samdwyer/cmdcrafter/internal/state"
	"github.com/samdwyer/cmdcrafter/internal/storage"
)

func (in *Interpreter) handleSaveGame(ctx context.Context, line string) {
	ctx, span := in.tracer.Start(ctx, "command.save")
	defer span.End()
	span.SetAttributes(attribute.String("slot", in.Saves.Name()))

	data, err := save.Encode(save.Export(in.Store))
	if err == nil {
		err = in.Saves.Write(ctx, data)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("save game: %v", err)
		in.Display.Message(display.Error, "Error saving game data.")
		return
	}

	span.SetAttributes(attribute.Int("bytes", len(data)))
	in.Display.Message(display.System, fmt.Sprintf("Game state saved to %s.", in.Saves.Name()))
	in.Display.Message(display.Voice, "Current operational parameters archived.")
}

// handleLoadGame replaces the live store with the saved game. The store is
// untouched unless the save reads and decodes cleanly.
func (in *Interpreter) handleLoadGame(ctx context.Context, line string) {
	ctx, span := in.tracer.Start(ctx, "command.load")
	defer span.End()
	span.SetAttributes(attribute.String("slot", in.Saves.Name()))

	if in.Store.IsGameOver() {
		in.Display.Message(display.System, "Attempting to load game from GAME_OVER state...")
	}
	in.Display.Message(display.System, fmt.Sprintf("Loading game from %s...", in.Saves.Name()))

	data, err := in.Saves.Read(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		in.Display.Message(display.Info, fmt.Sprintf("No saved game found in %s. Load game operation cancelled.", in.Saves.Name()))
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("load game: %v", err)
		in.Display.Message(display.Error, "Error reading save data.")
		return
	}
	doc, err := save.Decode(data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("load game: %v", err)
		in.Display.Message(display.Error, "Error loading game: Invalid save file or corrupted data.")
		return
	}

	in.Generator.Stop()
	save.Apply(in.Store, doc)
	in.Engine.RecomputeThreshold()

	in.Display.Message(display.System, "Game loaded successfully.")
	in.Display.Message(display.Voice, "System state restored. Resuming operations.")
	in.updateStatus()

	level := in.Store.Level()
	in.Display.RefreshMinerTypes(level)
	switch phase := in.Store.Phase(); {
	case phase == state.PhaseGameplay:
		in.Display.HideMinerTypes()
	case phase.IsSetup():
		in.Display.ShowMinerTypes(level)
	}

	if len(in.Store.Miners()) > 0 {
		in.Generator.Start()
	}
	in.Display.EnableInput()
	span.SetAttributes(attribute.String("phase", in.Store.Phase().String()))
}
