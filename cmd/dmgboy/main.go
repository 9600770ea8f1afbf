package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/ravnsson/dmgboy"
	"github.com/ravnsson/dmgboy/internal/input"
)

// frameTime is a 60 FPS tick, rounding the DMG's ~59.7 FPS refresh rate.
const frameTime = time.Second / 60

func main() {
	app := cli.NewApp()
	app.Name = "dmgboy"
	app.Description = "A DMG core: CPU, MBC3 bus and PPU tick accounting"
	app.Usage = "dmgboy [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a terminal display",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgboy exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	gb, err := dmgboy.LoadROM(romPath)
	if err != nil {
		return err
	}

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}
		return runHeadless(gb, frames)
	}

	return runInteractive(gb)
}

func runHeadless(gb *dmgboy.Gameboy, frames int) error {
	var buttons input.State
	for i := 0; i < frames; i++ {
		if _, err := gb.RunFrame(buttons); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		if (i+1)%60 == 0 {
			slog.Info("frame progress", "completed", i+1, "total", frames)
		}
	}
	slog.Info("headless run completed", "frames", frames)
	return nil
}

// runInteractive shows a small live status readout in the terminal. The
// core exposes a PPU tick-accounting API, not a pixel framebuffer, so
// there is no image to draw; this mirrors the terminal renderer loop
// structure without a display to paint.
func runInteractive(gb *dmgboy.Gameboy) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	events := make(chan tcell.Event, 8)
	go screen.ChannelEvents(events, nil)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	var buttons input.State
	frame := 0

	for {
		select {
		case <-ticker.C:
			if _, err := gb.RunFrame(buttons); err != nil {
				return err
			}
			frame++
			drawStatus(screen, frame)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

func drawStatus(screen tcell.Screen, frame int) {
	screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	text := fmt.Sprintf("dmgboy running - frame %d (Esc to quit)", frame)
	for i, r := range text {
		screen.SetContent(i, 0, r, nil, style)
	}
	screen.Show()
}
