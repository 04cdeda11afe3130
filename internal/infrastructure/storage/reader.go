package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"wander-server/internal/domain"
)

// Верхняя граница, чтобы битый заголовок не заставил выделить гигабайты
const maxActions = 10_000_000

func (s *ReplayService) Load(path string) (*domain.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadRecording(bufio.NewReader(f))
}

// ReadRecording декодирует запись, записанную WriteRecording
func ReadRecording(r io.Reader) (*domain.Recording, error) {
	// 1. Читаем заголовок целиком
	var header RecordingFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount > maxActions {
		return nil, fmt.Errorf("too many actions: %d", header.ActionCount)
	}

	rec := &domain.Recording{
		Seed:              header.Seed,
		Timestamp:         header.Timestamp,
		InitialPopulation: header.InitialPopulation,
		MaxPopulation:     header.MaxPopulation,
		Interval:          header.Interval,
		Frames:            header.Frames,
		Actions:           make([]domain.RecordedAction, header.ActionCount),
	}

	// 2. Читаем действия
	for i := range rec.Actions {
		var ar ActionRecord
		if err := binary.Read(r, binary.LittleEndian, &ar); err != nil {
			return nil, fmt.Errorf("failed to read action %d: %w", i, err)
		}
		rec.Actions[i] = domain.RecordedAction{
			Frame: ar.Frame,
			Kind:  domain.RecordKind(ar.Kind),
			Value: ar.Value,
		}
	}

	return rec, nil
}
