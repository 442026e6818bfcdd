package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	"google.golang.org/protobuf/proto"
)

// Sender delivers a message to the flock actor.
type Sender func(msg proto.Message) error

// App is the terminal host: it ticks the flock at a fixed frame rate, turns
// key presses into commands and redraws the latest snapshot.
type App struct {
	screen    tcell.Screen
	renderer  *Renderer
	send      Sender
	snapshots <-chan *simulation.Snapshot
	last      *simulation.Snapshot
	settings  flocking.Settings
	frame     time.Duration
}

// NewApp builds an App drawing on screen. fps must be positive.
func NewApp(screen tcell.Screen, cfg *simulation.Config, send Sender, snapshots <-chan *simulation.Snapshot, fps int) *App {
	return &App{
		screen:    screen,
		renderer:  NewRenderer(screen, cfg.WorldSize),
		send:      send,
		snapshots: snapshots,
		settings:  cfg.Flocking,
		frame:     time.Second / time.Duration(fps),
	}
}

// Run loops until the user quits, ctx is done or a message cannot be sent.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			quit, err := a.HandleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}

		case <-ticker.C:
			if err := a.send(simulation.NewTick(a.frame)); err != nil {
				return fmt.Errorf("sending tick: %w", err)
			}
			a.drain()
			a.renderer.Draw(a.last)
		}
	}
}

// drain keeps only the most recent snapshot.
func (a *App) drain() {
	for {
		select {
		case s := <-a.snapshots:
			a.last = s
		default:
			return
		}
	}
}

// HandleEvent reacts to one terminal event and reports whether to quit.
func (a *App) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return true, nil
		}
		if ev.Key() != tcell.KeyRune {
			return false, nil
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return true, nil
		case 's':
			a.settings.Separation = !a.settings.Separation
			return false, a.sendSettings()
		case 'a':
			a.settings.Alignment = !a.settings.Alignment
			return false, a.sendSettings()
		case 'c':
			a.settings.Cohesion = !a.settings.Cohesion
			return false, a.sendSettings()
		case ' ':
			msg, err := simulation.NewSpawnRequest(simulation.DefaultGroup())
			if err != nil {
				return false, err
			}
			return false, a.send(msg)
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false, nil
}

func (a *App) sendSettings() error {
	msg, err := simulation.NewSettingsUpdate(a.settings)
	if err != nil {
		return err
	}
	if err := a.send(msg); err != nil {
		return fmt.Errorf("sending settings: %w", err)
	}
	return nil
}

// Settings returns the settings last sent to the flock.
func (a *App) Settings() flocking.Settings {
	return a.settings
}
