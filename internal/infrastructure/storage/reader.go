package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/JFSvensson/Within-the-Woodpile-sub001/internal/domain"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrInvalidMagic       = errors.New("invalid magic")
	ErrUnsupportedVersion = errors.New("unsupported version")
)

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// List возвращает пути всех реплеев каталога, от старых к новым по имени.
func (s *ReplayService) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.SaveDir, "*"+FileExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Decode читает сжатый реплей из r.
func Decode(r io.Reader) (*domain.ReplaySession, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return readBinary(bufio.NewReader(dec))
}

// maxPreallocActions ограничивает заранее выделяемый срез: счетчик в заголовке
// берется из файла, дальше срез растет через append.
const maxPreallocActions = 4096

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, header.Version, Version1)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		Level:     int(header.Level),
		Actions:   make([]domain.ReplayAction, 0, min(header.ActionCount, maxPreallocActions)),
	}

	if header.NameLen > 0 {
		name := make([]byte, header.NameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, fmt.Errorf("failed to read name: %w", err)
		}
		session.Name = string(name)
	}

	// 2. Действия
	for i := uint32(0); i < header.ActionCount; i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Tick:   int(ah.Tick),
			Action: domain.ActionType(ah.ActionType),
		}

		tokenBuf := make([]byte, ah.TokenLen)
		if _, err := io.ReadFull(r, tokenBuf); err != nil {
			return nil, fmt.Errorf("action %d token: %w", i, err)
		}
		act.Token = string(tokenBuf)

		if ah.PayloadLen > 0 {
			act.Payload = make(json.RawMessage, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		} else {
			act.Payload = json.RawMessage{}
		}

		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
