package service

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"webbaby/internal/database"
	"webbaby/internal/models"
	"webbaby/internal/repository"
)

const (
	backupFormat  = "webbaby-backup"
	backupVersion = "1.0"
)

// zstdMagic starts every zstd frame
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// sequenceTables have auto-increment ids restored from backups
var sequenceTables = []string{"feeds", "weights", "heights", "notes", "teeth"}

// BackupData represents the complete database backup structure
type BackupData struct {
	ID           string            `json:"id"`
	Version      string            `json:"version"`
	ExportedAt   time.Time         `json:"exported_at"`
	DatabaseType string            `json:"database_type"`
	Config       *models.AppConfig `json:"config"`
	Feeds        []models.Feed     `json:"feeds"`
	Weights      []models.Weight   `json:"weights"`
	Heights      []models.Height   `json:"heights"`
	Notes        []models.Note     `json:"notes"`
	Teeth        []models.Tooth    `json:"teeth"`
}

// backupEnvelope carries the data with an xxhash64 checksum of its compact
// JSON encoding
type backupEnvelope struct {
	Format   string          `json:"format"`
	Checksum string          `json:"checksum"`
	Data     json.RawMessage `json:"data"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string, compress bool) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	backup, err := s.ExportToWriter(file, compress)
	if err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d feeds, %d weights, %d heights, %d notes, %d teeth",
		len(backup.Feeds), len(backup.Weights), len(backup.Heights), len(backup.Notes), len(backup.Teeth))
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer, compress bool) (*BackupData, error) {
	backup, err := s.collect()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(backup)
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	env := backupEnvelope{
		Format:   backupFormat,
		Checksum: checksum(data),
		Data:     data,
	}

	out := w
	var enc *zstd.Encoder
	if compress {
		enc, err = zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		out = enc
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(env); err != nil {
		if enc != nil {
			enc.Close()
		}
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to finish zstd stream: %w", err)
		}
	}
	return backup, nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string, clearFirst bool) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	_, err = s.ImportFromReader(file, clearFirst)
	return err
}

// ImportFromReader restores a database from a plain or zstd-compressed
// backup. With clearFirst set, existing rows are deleted first. Everything
// runs in one transaction.
func (s *BackupService) ImportFromReader(reader io.Reader, clearFirst bool) (*BackupData, error) {
	backup, err := ReadBackup(reader)
	if err != nil {
		return nil, err
	}

	log.Printf("Backup %s version: %s, exported at: %s", backup.ID, backup.Version, backup.ExportedAt)

	err = s.db.WithTx(func(tx *database.Tx) error {
		if clearFirst {
			if err := repository.ClearAll(tx); err != nil {
				return err
			}
		}
		if err := restore(tx, backup); err != nil {
			return err
		}
		for _, table := range sequenceTables {
			if query := tx.GetDialect().ResetSequenceQuery(table); query != "" {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to reset %s sequence: %w", table, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to import backup: %w", err)
	}

	log.Printf("Imported: %d feeds, %d weights, %d heights, %d notes, %d teeth",
		len(backup.Feeds), len(backup.Weights), len(backup.Heights), len(backup.Notes), len(backup.Teeth))
	log.Println("Database import completed successfully")
	return backup, nil
}

// ReadBackup decodes a backup and verifies its checksum
func ReadBackup(reader io.Reader) (*BackupData, error) {
	br := bufio.NewReader(reader)
	var in io.Reader = br
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer dec.Close()
		in = dec
	}

	var env backupEnvelope
	if err := json.NewDecoder(in).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if env.Format != backupFormat {
		return nil, fmt.Errorf("unsupported backup format %q", env.Format)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, env.Data); err != nil {
		return nil, fmt.Errorf("failed to decode backup data: %w", err)
	}
	if checksum(compact.Bytes()) != env.Checksum {
		return nil, ErrChecksumMismatch
	}

	var backup BackupData
	if err := json.Unmarshal(compact.Bytes(), &backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup data: %w", err)
	}
	return &backup, nil
}

func (s *BackupService) collect() (*BackupData, error) {
	backup := &BackupData{
		ID:           uuid.New().String(),
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.MigrationsSubdir(),
	}

	var err error
	if backup.Config, err = repository.NewConfigRepository(s.db).Get(); err != nil {
		return nil, fmt.Errorf("failed to export config: %w", err)
	}
	if backup.Feeds, err = repository.NewFeedRepository(s.db).List(time.Time{}, time.Time{}); err != nil {
		return nil, fmt.Errorf("failed to export feeds: %w", err)
	}
	measurements := repository.NewMeasurementRepository(s.db)
	if backup.Weights, err = measurements.ListWeights(models.Date{}, models.Date{}); err != nil {
		return nil, fmt.Errorf("failed to export weights: %w", err)
	}
	if backup.Heights, err = measurements.ListHeights(models.Date{}, models.Date{}); err != nil {
		return nil, fmt.Errorf("failed to export heights: %w", err)
	}
	if backup.Notes, err = repository.NewNoteRepository(s.db).List(models.Date{}, models.Date{}); err != nil {
		return nil, fmt.Errorf("failed to export notes: %w", err)
	}
	if backup.Teeth, err = repository.NewToothRepository(s.db).List(); err != nil {
		return nil, fmt.Errorf("failed to export teeth: %w", err)
	}
	return backup, nil
}

func restore(tx *database.Tx, backup *BackupData) error {
	if backup.Config != nil {
		if err := repository.NewConfigRepository(tx).Save(backup.Config); err != nil {
			return err
		}
	}

	feeds := repository.NewFeedRepository(tx)
	for _, f := range backup.Feeds {
		if err := feeds.Insert(f); err != nil {
			return err
		}
	}

	measurements := repository.NewMeasurementRepository(tx)
	for _, w := range backup.Weights {
		if err := measurements.InsertWeight(w); err != nil {
			return err
		}
	}
	for _, h := range backup.Heights {
		if err := measurements.InsertHeight(h); err != nil {
			return err
		}
	}

	notes := repository.NewNoteRepository(tx)
	for _, n := range backup.Notes {
		if err := notes.Insert(n); err != nil {
			return err
		}
	}

	teeth := repository.NewToothRepository(tx)
	for _, t := range backup.Teeth {
		if err := teeth.Insert(t); err != nil {
			return err
		}
	}
	return nil
}

func checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
