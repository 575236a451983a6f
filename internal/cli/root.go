package cli

import (
	"fmt"
	"os"

	"github.com/amterp/ra"
	"github.com/amterp/swatch/internal/version"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Reference      *string

	// init command
	InitUsed      *bool
	InitReference *string
	InitColour    *string
	InitRestrict  *bool
	InitEdit      *bool

	// show command
	ShowUsed     *bool
	ShowColour   *string
	ShowRestrict *bool
	ShowJson     *bool

	// match command
	MatchUsed   *bool
	MatchColour *string
	MatchCount  *int
	MatchJson   *bool

	// wheel command
	WheelUsed     *bool
	WheelColour   *string
	WheelOutput   *string
	WheelSize     *int
	WheelRestrict *bool

	// build command
	BuildUsed    *bool
	BuildDir     *string
	BuildOutput  *string
	BuildWorkers *int
	BuildForce   *bool
	BuildJson    *bool

	// list command
	ListUsed   *bool
	ListFilter *string
	ListJson   *bool

	// pick command
	PickUsed     *bool
	PickRestrict *bool

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// doctor command
	DoctorUsed   *bool
	DoctorFix    *bool
	DoctorDryRun *bool
	DoctorJson   *bool

	// version command
	VersionUsed *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("swatch")
	cmd.SetDescription("Colour palettes matched against a reference colour map")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Reference, _ = ra.NewString("reference").
		SetOptional(true).
		SetFlagOnly(true).
		SetDefault("").
		SetUsage("Path to the reference colour map (overrides config)").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerShow(cmd, ctx)
	registerMatch(cmd, ctx)
	registerWheel(cmd, ctx)
	registerBuild(cmd, ctx)
	registerList(cmd, ctx)
	registerPick(cmd, ctx)
	registerServe(cmd, ctx)
	registerDoctor(cmd, ctx)
	registerCompletion(cmd, ctx)

	versionCmd := ra.NewCmd("version")
	versionCmd.SetDescription("Print the swatch version")
	ctx.VersionUsed, _ = cmd.RegisterCmd(versionCmd)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	interactive := !*ctx.NonInteractive
	ref := *ctx.Reference

	switch {
	case *ctx.InitUsed:
		runInit(*ctx.InitReference, *ctx.InitColour, *ctx.InitRestrict, *ctx.InitEdit, interactive)

	case *ctx.ShowUsed:
		runShow(*ctx.ShowColour, ref, *ctx.ShowRestrict, *ctx.ShowJson, interactive)

	case *ctx.MatchUsed:
		runMatch(*ctx.MatchColour, ref, *ctx.MatchCount, *ctx.MatchJson, interactive)

	case *ctx.WheelUsed:
		runWheel(*ctx.WheelColour, ref, *ctx.WheelOutput, *ctx.WheelSize, *ctx.WheelRestrict, interactive)

	case *ctx.BuildUsed:
		runBuild(*ctx.BuildDir, ref, *ctx.BuildOutput, *ctx.BuildWorkers, *ctx.BuildForce, *ctx.BuildJson, interactive)

	case *ctx.ListUsed:
		runList(ref, *ctx.ListFilter, *ctx.ListJson, interactive)

	case *ctx.PickUsed:
		runPick(ref, *ctx.PickRestrict, interactive)

	case *ctx.ServeUsed:
		runServe(ref, *ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.DoctorUsed:
		runDoctor(ref, *ctx.DoctorFix, *ctx.DoctorDryRun, *ctx.DoctorJson)

	case *ctx.VersionUsed:
		fmt.Printf("swatch %s\n", version.Version)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
