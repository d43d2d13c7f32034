package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	radioconductor "github.com/Baptiste-Leterrier/radio-conductor"
	"github.com/Baptiste-Leterrier/radio-conductor/audio"
	"github.com/Baptiste-Leterrier/radio-conductor/board"
	"github.com/Baptiste-Leterrier/radio-conductor/player"
	"github.com/Baptiste-Leterrier/radio-conductor/waveform"
)

func main() {
	var (
		boardPath  string
		tab        int
		slot       int
		importPath string
		play       bool
		playFor    float64
		info       bool
	)

	flag.StringVar(&boardPath, "board", radioconductor.DefaultSaveName, "The board file to operate on")
	flag.IntVar(&tab, "tab", 0, "The tab index")
	flag.IntVar(&slot, "slot", 0, "The button slot index")
	flag.StringVar(&importPath, "import", "", "Import an audio file into the given tab/slot")
	flag.BoolVar(&play, "play", false, "Play the button at the given tab/slot")
	flag.Float64Var(&playFor, "play-for", 0, "Fade out after this many seconds (0 plays to the end)")
	flag.BoolVar(&info, "info", false, "List tabs and buttons")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if importPath == "" && !play && !info {
		flag.Usage()
		os.Exit(1)
	}

	b, err := board.Load(boardPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Failed to load board: %v\n", err)
			os.Exit(1)
		}
		b = board.New()
	}

	reg := radioconductor.NewRegistry()

	if importPath != "" {
		ext := waveform.NewExtractor(reg)
		clip, err := radioconductor.ImportClip(ext, importPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		for tab >= len(b.Tabs) {
			b.AddTab()
		}
		if err := b.PlaceClip(tab, slot, clip); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot place clip: %v\n", err)
			os.Exit(1)
		}
		if err := b.Save(boardPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save board: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %s into tab %d slot %d (%s, %d envelope points)\n",
			clip.Name, tab, slot, radioconductor.FormatTime(clip.Duration), len(clip.Envelope))
	}

	if info {
		printBoard(b)
	}

	if play {
		if err := playSlot(b, reg, tab, slot, playFor); err != nil {
			fmt.Fprintf(os.Stderr, "Playback failed: %v\n", err)
			os.Exit(1)
		}
	}
}

func printBoard(b *board.Board) {
	for i, t := range b.Tabs {
		marker := " "
		if i == b.ActiveTab {
			marker = "*"
		}
		fmt.Printf("%s Tab %d: %s\n", marker, i, t.Name)
		for j, btn := range t.Buttons {
			if btn.Clip == nil {
				fmt.Printf("    [%2d] (empty)\n", j)
				continue
			}
			fmt.Printf("    [%2d] %-24s %s  %s\n",
				j, btn.Label, radioconductor.FormatTime(btn.Clip.Duration), btn.Clip.Path)
		}
	}
}

func playSlot(b *board.Board, reg *audio.Registry, tab, slot int, playFor float64) error {
	btn := b.Button(tab, slot)
	if btn == nil || btn.Clip == nil {
		return board.ErrNoSuchSlot
	}

	eng, err := player.New(reg)
	if err != nil {
		return err
	}

	session := player.Session{Tab: tab, Button: slot}
	if err := eng.Play(btn.Clip.Path, btn.Clip.Duration, session); err != nil {
		return err
	}
	fmt.Printf("Playing %s (%s)\n", btn.Label, radioconductor.FormatTime(btn.Clip.Duration))

	for {
		time.Sleep(100 * time.Millisecond)
		elapsed := eng.Elapsed()

		if playFor > 0 && elapsed >= playFor {
			eng.FadeOut()
			// The fade worker runs for one second; give it room to finish
			time.Sleep(1200 * time.Millisecond)
			fmt.Println()
			return nil
		}

		// The engine does not signal natural end of clip; compare the
		// wall clock against the known duration, as a UI would
		if btn.Clip.Duration > 0 && elapsed >= btn.Clip.Duration {
			eng.Stop()
			fmt.Println()
			return nil
		}

		fmt.Printf("\r  %s / %s", radioconductor.FormatTime(elapsed),
			radioconductor.FormatTime(btn.Clip.Duration))
	}
}
