package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/engine"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/infrastructure/storage"
	"github.com/JFSvensson/Within-the-Woodpile-sub001/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	logger.Init()
	switch os.Args[1] {
	case "list":
		list(os.Args[2])
	case "info":
		info(os.Args[2])
	case "verify":
		verify(os.Args[2])
	default:
		printHelp()
	}
}

func list(dir string) {
	svc := &storage.ReplayService{SaveDir: dir}
	paths, err := svc.List()
	if err != nil {
		fail(err)
	}
	for _, p := range paths {
		replay, err := svc.Load(p)
		if err != nil {
			fmt.Printf("%-50s  broken: %v\n", filepath.Base(p), err)
			continue
		}
		fmt.Printf("%-50s  %-16s seed=%d level=%d actions=%d %s\n",
			filepath.Base(p), replay.Name, replay.Seed, replay.Level, len(replay.Actions),
			time.Unix(replay.Timestamp, 0).Format(time.RFC3339))
	}
}

func info(path string) {
	svc := &storage.ReplayService{SaveDir: filepath.Dir(path)}
	replay, err := svc.Load(path)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Player:  %s\n", replay.Name)
	fmt.Printf("Seed:    %d\n", replay.Seed)
	fmt.Printf("Level:   %d\n", replay.Level)
	fmt.Printf("Started: %s\n", time.Unix(replay.Timestamp, 0).Format(time.RFC3339))
	fmt.Printf("Actions: %d\n", len(replay.Actions))
	for _, a := range replay.Actions {
		fmt.Printf("  #%-4d %-10s %s\n", a.Tick, a.Action, string(a.Payload))
	}
}

// verify прогоняет реплей через движок с настройками по умолчанию.
func verify(path string) {
	svc := &storage.ReplayService{SaveDir: filepath.Dir(path)}
	replay, err := svc.Load(path)
	if err != nil {
		fail(err)
	}
	session, err := engine.NewService(engine.NewConfig()).Playback(replay)
	if err != nil {
		fail(err)
	}
	s := session.Summary()
	fmt.Printf("OK: score=%d health=%d level=%d status=%s left=%d\n", s.Score, s.Health, s.Level, s.Status, s.LiveCount)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func printHelp() {
	fmt.Println(`Replay Tool - просмотр и проверка записей партий (.wprp)
Commands:
  list <dir>       - все реплеи каталога с заголовками
  info <file>      - заголовок и лента действий
  verify <file>    - прогнать реплей через движок и вывести итог`)
}
