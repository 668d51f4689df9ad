package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/spec-kit/cdce-console/internal/clock"
	"github.com/spec-kit/cdce-console/internal/domain"
	"github.com/spec-kit/cdce-console/internal/events"
	apperrors "github.com/spec-kit/cdce-console/pkg/util"
)

// Backup is the full-state snapshot exchanged as a file.
type Backup struct {
	Tickets    []domain.Ticket        `json:"tickets"`
	Inventory  []domain.InventoryItem `json:"inventory"`
	ExportedAt time.Time              `json:"exported_at"`
}

// BackupFile is a serialized snapshot ready for download.
type BackupFile struct {
	Filename string
	Content  []byte
	Backup   Backup
}

// Archiver stores a copy of a backup file somewhere durable and returns
// where it went.
type Archiver interface {
	Archive(ctx context.Context, name string, content []byte) (string, error)
}

// BackupService exports and restores the whole state.
type BackupService struct {
	state      *State
	clock      clock.Clock
	archiver   Archiver
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewBackupService constructs the service. archiver may be nil.
func NewBackupService(deps Dependencies, archiver Archiver) *BackupService {
	return &BackupService{
		state:      deps.State,
		clock:      deps.Clock,
		archiver:   archiver,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Export snapshots the state as indented JSON named cdce_backup_YYYY-MM-DD.json.
func (s *BackupService) Export(ctx context.Context) (BackupFile, error) {
	tickets, inventory := s.state.Snapshot()
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	if inventory == nil {
		inventory = []domain.InventoryItem{}
	}
	now := s.clock.Now().UTC()
	backup := Backup{Tickets: tickets, Inventory: inventory, ExportedAt: now}

	content, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return BackupFile{}, apperrors.NewInternalError(fmt.Errorf("encode backup: %w", err))
	}

	s.publish(ctx, events.New(events.EventBackupExported, "", now, events.BackupPayload{
		Tickets:   len(tickets),
		Inventory: len(inventory),
	}))
	return BackupFile{
		Filename: fmt.Sprintf("cdce_backup_%s.json", now.Format("2006-01-02")),
		Content:  content,
		Backup:   backup,
	}, nil
}

// Archive exports a snapshot and hands it to the configured archiver.
func (s *BackupService) Archive(ctx context.Context) (string, error) {
	if s.archiver == nil {
		return "", apperrors.NewUnavailable("backup archiving is not configured")
	}
	file, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	location, err := s.archiver.Archive(ctx, file.Filename, file.Content)
	if err != nil {
		s.logger.Error("archive backup failed", zap.Error(err))
		return "", apperrors.NewInternalError(err)
	}
	s.logger.Info("backup archived", zap.String("location", location))
	return location, nil
}

// Restore parses raw and, only if it carries both collections, replaces
// the state with them. Any failure leaves the state untouched.
func (s *BackupService) Restore(ctx context.Context, raw []byte) (events.BackupPayload, error) {
	backup, err := ParseBackup(raw)
	if err != nil {
		return events.BackupPayload{}, err
	}
	if err := s.state.ReplaceAll(ctx, backup.Tickets, backup.Inventory); err != nil {
		return events.BackupPayload{}, apperrors.NewInternalError(err)
	}

	counts := events.BackupPayload{Tickets: len(backup.Tickets), Inventory: len(backup.Inventory)}
	s.logger.Info("backup restored", zap.Int("tickets", counts.Tickets), zap.Int("inventory", counts.Inventory))
	s.publish(ctx, events.New(events.EventBackupRestored, "", s.clock.Now().UTC(), counts))
	return counts, nil
}

// ParseBackup decodes a backup document. Text that is not JSON yields a
// read error; JSON without both non-null collections, or with collections
// that do not decode, yields an invalid-format error.
func ParseBackup(raw []byte) (Backup, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !json.Valid(raw) {
		return Backup{}, apperrors.NewReadError(errors.New("backup is not valid JSON"))
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Backup{}, apperrors.NewInvalidFormat(err)
	}
	ticketsRaw, okT := present(doc, "tickets")
	inventoryRaw, okI := present(doc, "inventory")
	if !okT || !okI {
		return Backup{}, apperrors.NewInvalidFormat(errors.New("backup must contain tickets and inventory"))
	}

	var backup Backup
	var decodeErr error
	if err := json.Unmarshal(ticketsRaw, &backup.Tickets); err != nil {
		decodeErr = multierr.Append(decodeErr, fmt.Errorf("tickets: %w", err))
	}
	if err := json.Unmarshal(inventoryRaw, &backup.Inventory); err != nil {
		decodeErr = multierr.Append(decodeErr, fmt.Errorf("inventory: %w", err))
	}
	if decodeErr != nil {
		return Backup{}, apperrors.NewInvalidFormat(decodeErr)
	}
	if exported, ok := present(doc, "exported_at"); ok {
		_ = json.Unmarshal(exported, &backup.ExportedAt)
	}
	return backup, nil
}

func present(doc map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := doc[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func (s *BackupService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
