package portfolio

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type stubStore struct {
	backend portfolio.Backend
	saveErr error
	saved   []*portfolio.Portfolio
	found   map[uuid.UUID]*portfolio.Portfolio
	findErr error
}

func newStubStore() *stubStore {
	return &stubStore{backend: portfolio.BackendMemory, found: map[uuid.UUID]*portfolio.Portfolio{}}
}

func (s *stubStore) Save(_ context.Context, p *portfolio.Portfolio) (portfolio.Backend, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved = append(s.saved, p)
	s.found[p.OwnerID()] = p
	return s.backend, nil
}

func (s *stubStore) FindByOwner(_ context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, portfolio.Backend, error) {
	if s.findErr != nil {
		return nil, "", s.findErr
	}
	p, ok := s.found[ownerID]
	if !ok {
		return nil, "", apperror.NewNotFound("portfolio", ownerID.String())
	}
	return p, s.backend, nil
}

type stubUploader struct {
	err     error
	folder  string
	id      string
	payload []byte
	deleted chan string
}

func (u *stubUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.folder, u.id = folder, publicID
	u.payload, _ = io.ReadAll(file)
	return "https://cdn.example.com/" + folder + "/" + publicID, nil
}

func (u *stubUploader) Delete(_ context.Context, publicID string) error {
	if u.deleted != nil {
		u.deleted <- publicID
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	err    error
	events chan service.PortfolioEventPayload
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(chan service.PortfolioEventPayload, 4)}
}

func (p *recordingPublisher) PublishPortfolioEvent(_ context.Context, payload service.PortfolioEventPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events <- payload
	return p.err
}

var errBoom = errors.New("boom")

type logEntry struct {
	msg    string
	fields map[string]string
}

// recordingLogger keeps Debug entries with their string fields.
type recordingLogger struct {
	logger.Logger
	mu      sync.Mutex
	entries []logEntry
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{Logger: logger.NewNopLogger()}
}

func (l *recordingLogger) Debug(msg string, fields ...zap.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := logEntry{msg: msg, fields: map[string]string{}}
	for _, f := range fields {
		entry.fields[f.Key] = f.String
	}
	l.entries = append(l.entries, entry)
}

func (l *recordingLogger) debugEntries() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}
