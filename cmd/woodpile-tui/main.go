// Command woodpile-tui - терминальный клиент: партия идет в том же процессе,
// без сети, через тот же GameService, что и у сервера.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/agent"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/api"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
	"github.com/gdamore/tcell/v2"
)

type app struct {
	screen  tcell.Screen
	game    *engine.GameService
	session string
	sound   *soundBoard
	view    view
}

func main() {
	var (
		seed       int64
		name       string
		configPath string
		mute       bool
	)
	flag.Int64Var(&seed, "seed", 0, "Pile seed (0 for random)")
	flag.StringVar(&name, "name", "player", "Player name")
	flag.StringVar(&configPath, "config", "", "Path to tuning YAML")
	flag.BoolVar(&mute, "mute", false, "Disable sound")
	flag.Parse()

	// Терминал занят tcell: логи писать некуда
	logger.Init()
	logger.Log.SetOutput(io.Discard)

	cfg := engine.NewConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(cfg, name, seed, mute); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg engine.Config, name string, seed int64, mute bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	sound := newSoundBoard()
	if !mute {
		// Без звуковой карты просто играем молча
		_ = sound.init()
	}
	defer sound.close()

	game := engine.NewService(cfg)
	defer game.Shutdown()

	session, err := game.CreateSession(name, seed)
	if err != nil {
		return err
	}

	a := &app{screen: screen, game: game, session: session.ID, sound: sound}
	updates := game.Hub.Register(session.ID)
	defer game.Hub.Unregister(session.ID)

	a.send("INIT", nil)
	return a.loop(updates)
}

func (a *app) loop(updates <-chan api.ServerResponse) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // экран закрыт
			}
			events <- ev
		}
	}()

	// Таймер встречи тикает на экране
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}

		case resp, ok := <-updates:
			if !ok {
				return nil
			}
			a.onResponse(resp)

		case <-ticker.C:
			if a.view.state != nil && a.view.state.Encounter == nil {
				continue
			}
		}
		a.view.draw(a.screen, time.Now())
	}
}

// handleEvent возвращает false, когда игрок выходит.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			a.moveCursor(1, 0)
		case tcell.KeyDown:
			a.moveCursor(-1, 0)
		case tcell.KeyLeft:
			a.moveCursor(0, -1)
		case tcell.KeyRight:
			a.moveCursor(0, 1)
		case tcell.KeyEnter:
			if a.view.cursor != "" {
				a.send("PICK", api.PiecePayload{PieceID: a.view.cursor})
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.send("REACT", nil)
			case 'n':
				a.send("NEXT_LEVEL", nil)
			case 'r':
				a.send("RESTART", nil)
			case 'h':
				a.hint()
			}
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *app) moveCursor(dRow, dCol int) {
	if a.view.move(dRow, dCol) {
		a.send("HOVER", api.PiecePayload{PieceID: a.view.cursor})
	}
}

// hint ставит курсор туда, куда пошел бы бот.
func (a *app) hint() {
	if a.view.state == nil {
		return
	}
	stab := a.game.Config.StabilityConfig()
	piece := agent.ChoosePiece(stab, agent.BuildLocalPile(stab, a.view.state.Pile))
	if piece == nil || piece.ID.String() == a.view.cursor {
		return
	}
	a.view.cursor = piece.ID.String()
	a.view.affected = nil
	a.send("HOVER", api.PiecePayload{PieceID: a.view.cursor})
}

// onResponse обновляет экран и озвучивает то, что изменилось.
func (a *app) onResponse(resp api.ServerResponse) {
	prev := a.view.state
	prevCursor := a.view.cursor
	a.view.apply(resp)

	if resp.Type == "UPDATE" && resp.Game != nil {
		switch {
		case len(resp.Collapsed) > 0:
			a.sound.collapse(len(resp.Collapsed))
		case prev != nil && prev.Game != nil && resp.Game.Picks > prev.Game.Picks:
			a.sound.pick()
		}
		if resp.Encounter != nil && (prev == nil || prev.Encounter == nil) {
			a.sound.creature()
		}
		if resp.Game.Status == "LEVEL_CLEARED" && (prev == nil || prev.Game == nil || prev.Game.Status != "LEVEL_CLEARED") {
			a.sound.cleared()
		}
	}
	for _, l := range resp.Logs {
		if l.Type == "BITE" {
			a.sound.bite()
		}
	}

	// Курсор переехал после снятия: заново спрашиваем подсветку
	if a.view.cursor != "" && (a.view.cursor != prevCursor || resp.Type == "UPDATE") {
		a.send("HOVER", api.PiecePayload{PieceID: a.view.cursor})
	}
}

func (a *app) send(action string, payload any) {
	cmd := api.ClientCommand{Token: a.session, Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return
		}
		cmd.Payload = raw
	}
	if err := a.game.ProcessCommand(cmd); err != nil {
		a.view.logs = append(a.view.logs, api.LogEntry{Text: err.Error(), Type: "ERROR"})
	}
}
