package storage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wander-server/internal/domain"
	"wander-server/pkg/logger"
)

const (
	MagicHeader string = `WSRP` // 4 байта
	Version1    uint32 = 1
)

// RecordingFileHeader — точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: тут нет слайсов и строк, только массивы и числа.
type RecordingFileHeader struct {
	Magic             [4]byte // 4 байта
	Version           uint32  // 4 байта
	Seed              int64   // 8 байт
	Timestamp         int64   // 8 байт
	InitialPopulation int32   // 4 байта
	MaxPopulation     int32   // 4 байта
	Interval          int32   // 4 байта
	Frames            uint64  // 8 байт
	ActionCount       uint32  // 4 байта
}

// ActionRecord — одна запись действия фиксированного размера.
type ActionRecord struct {
	Frame uint64 // 8
	Kind  uint8  // 1
	Value int32  // 4
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	// Создаем папку если нет
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Log.WithError(err).WithField("dir", dir).Warn("Failed to create replay dir")
	}
	return &ReplayService{SaveDir: dir}
}

// Save пишет запись в SaveDir и возвращает путь к файлу
func (s *ReplayService) Save(rec *domain.Recording) (string, error) {
	filename := fmt.Sprintf("replay_%d_%d.wsrp", rec.Seed, rec.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := WriteRecording(bw, rec); err != nil {
		return "", err
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush recording: %w", err)
	}
	return path, nil
}

// WriteRecording кодирует запись в бинарный формат
func WriteRecording(w io.Writer, rec *domain.Recording) error {
	// 1. Глобальный заголовок
	header := RecordingFileHeader{
		Version:           Version1,
		Seed:              rec.Seed,
		Timestamp:         rec.Timestamp,
		InitialPopulation: rec.InitialPopulation,
		MaxPopulation:     rec.MaxPopulation,
		Interval:          rec.Interval,
		Frames:            rec.Frames,
		ActionCount:       uint32(len(rec.Actions)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Действия
	for i, act := range rec.Actions {
		record := ActionRecord{
			Frame: act.Frame,
			Kind:  uint8(act.Kind),
			Value: act.Value,
		}
		if err := binary.Write(w, binary.LittleEndian, &record); err != nil {
			return fmt.Errorf("failed to write action %d: %w", i, err)
		}
	}

	return nil
}
