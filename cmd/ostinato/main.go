package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ostinato-player/ostinato/internal/cli"
	"github.com/ostinato-player/ostinato/internal/config"
	"github.com/ostinato-player/ostinato/internal/media"
	"github.com/ostinato-player/ostinato/internal/ui"
	"github.com/ostinato-player/ostinato/internal/waveform"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

// versionFlag prints the styled version block and exits before any
// command runs.
type versionFlag bool

func (versionFlag) BeforeApply(app *kong.Kong) error {
	cli.PrintVersion(version)
	app.Exit(0)
	return nil
}

var CLI struct {
	Config  string      `help:"Settings file" default:"~/.config/ostinato/settings.yaml" type:"path"`
	Version versionFlag `help:"Show version information"`

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play audio files in the terminal"`
	Waveform WaveformCmd `cmd:"" help:"Print the sampled waveform of a file"`
	Info     InfoCmd     `cmd:"" help:"Show container and track details"`
}

type PlayCmd struct {
	Files []string `arg:"" name:"file" help:"Audio files to queue" type:"existingfile"`
}

func (c *PlayCmd) Run(settings config.Settings) error {
	model := ui.NewModel(c.Files, settings)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return model.Err()
}

type WaveformCmd struct {
	File   string `arg:"" help:"Audio file to sample" type:"existingfile"`
	Raw    bool   `help:"Print the numeric values instead of a strip"`
	Width  int    `help:"Strip width in cells" default:"80"`
	Smooth bool   `help:"Bucket-average instead of peak picking"`
}

func (c *WaveformCmd) Run(settings config.Settings) error {
	points, err := waveform.GenerateOpts(c.File, waveform.Options{
		Points: settings.WaveformLen,
		Budget: settings.SamplesPerPoint,
	})
	if err != nil {
		return err
	}
	if len(points) == 0 {
		cli.PrintWarning("no waveform could be sampled from this file")
		return nil
	}

	if c.Raw {
		parts := make([]string, len(points))
		for i, v := range points {
			parts[i] = fmt.Sprintf("%.4f", v)
		}
		fmt.Println(strings.Join(parts, " "))
		return nil
	}

	if c.Smooth {
		fmt.Println(ui.RenderStripSmooth(points, c.Width))
	} else {
		fmt.Println(ui.RenderStrip(points, c.Width))
	}
	return nil
}

type InfoCmd struct {
	File string `arg:"" help:"Audio file to inspect" type:"existingfile"`
}

func (c *InfoCmd) Run() error {
	src, err := media.Open(c.File)
	if err != nil {
		return err
	}
	defer src.Close()

	r, err := media.Probe(src, media.Hint(c.File))
	if err != nil {
		return err
	}
	defer r.Close()

	track, err := r.DefaultTrack()
	if err != nil {
		return err
	}

	cli.PrintBanner()
	cli.PrintSection(filepath.Base(c.File))
	cli.PrintInfo("Codec", string(track.Codec))
	cli.PrintInfo("Sample rate", fmt.Sprintf("%d Hz", track.SampleRate))
	cli.PrintInfo("Channels", fmt.Sprintf("%d", track.Channels))
	if duration, err := track.Duration(); err == nil {
		cli.PrintInfo("Duration", cli.FormatDuration(duration))
	} else {
		cli.PrintInfo("Duration", "unknown")
	}
	if size, err := src.Size(); err == nil {
		cli.PrintInfo("Size", cli.FormatBytes(size))
	}
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ostinato"),
		kong.Description("A terminal music player with sampled waveform seeking."),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	settings, err := config.Load(CLI.Config)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
	ctx.Bind(settings)

	if err := ctx.Run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
