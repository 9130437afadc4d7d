package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/google/uuid"

	"github.com/spraklab/wsrng-server/internal/domain/project"
	"github.com/spraklab/wsrng-server/internal/domain/recfile"
	"github.com/spraklab/wsrng-server/internal/domain/script"
	"github.com/spraklab/wsrng-server/internal/event"
	"github.com/spraklab/wsrng-server/internal/repository"
)

// UploadExt is the extension of uploaded audio chunks.
const UploadExt = "wav"

// Service orchestrates session requests end to end: it resolves the
// addressed documents, runs the state machine and the audio pipeline,
// notifies handler modules and persists the outcome. It owns no state
// beyond the single request.
type Service struct {
	sessions Repository
	projects ProjectService
	recfiles RecfileBuilder
	audio    AudioStore
	events   Dispatcher
	logger   *slog.Logger
}

// NewService creates a new session service.
func NewService(
	sessions Repository,
	projects ProjectService,
	recfiles RecfileBuilder,
	audio AudioStore,
	events Dispatcher,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions: sessions,
		projects: projects,
		recfiles: recfiles,
		audio:    audio,
		events:   events,
		logger:   logger,
	}
}

// CreatedEventData is the sessionCreated payload.
type CreatedEventData struct {
	Session *Session
}

// UploadEventData is the sessionFileUpload payload. Audio holds the raw
// chunk bytes for direct uploads; relocation-sourced events carry only the
// destination Path.
type UploadEventData struct {
	Audio      []byte
	ItemCode   string
	FileEnding string
	Path       string
	Session    *Session
}

// PatchEventData is the payload for the pre-merge sessionRestarted and
// sessionComplete events. Session is a snapshot taken before the merge.
type PatchEventData struct {
	ProjectName string
	Session     *Session
	Patch       Patch
}

// PatchedEventData is the sessionPatched payload, fired after every merge.
type PatchedEventData struct {
	Session *Session
	Patch   Patch
}

// CreateResult holds the documents produced by a session-new request.
type CreateResult struct {
	Session *Session
	Project *project.Project
}

// Create starts a new session from a caller-supplied config document.
// Defaults are merged under the caller's fields, so caller values always
// win. The owning project is created with defaults when unseen.
func (s *Service) Create(ctx context.Context, cfg map[string]any) (*CreateResult, error) {
	name, _ := cfg["project"].(string)
	if name == "" {
		return nil, ErrInvalidInput
	}

	proj, err := s.projects.Ensure(ctx, name)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any, len(cfg)+7)
	maps.Copy(doc, cfg)
	defaults := map[string]any{
		"debugMode": true,
		"sessionId": uuid.NewString(),
		"type":      "NORM",
		"project":   proj.Name,
		"status":    string(StatusCreated),
		"sealed":    false,
		"script":    script.DefaultScriptID,
	}
	for k, v := range defaults {
		if _, ok := doc[k]; !ok {
			doc[k] = v
		}
	}

	sess := FromDocument(doc)
	if err := s.sessions.Insert(ctx, sess); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.logger.Info("created new speech recorder session",
		"session", sess.SessionID, "project", sess.Project)

	s.events.Dispatch(ctx, event.Event{
		Type: event.SessionCreated,
		Data: CreatedEventData{Session: sess.Clone()},
	})

	return &CreateResult{Session: sess, Project: proj}, nil
}

// Get fetches a session for display. A session stored as COMPLETED is
// reported as LOADED: if the recorder client saw COMPLETED it would never
// send the completion patch on the next pass, and we would not learn when
// recording finishes. The stored document is not touched.
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	sess, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := sess.Clone()
	if view.Status == StatusCompleted {
		view.Status = StatusLoaded
	}
	return view, nil
}

// Patch applies a sparse merge to the session. A non-empty restartedDate
// fires sessionRestarted before the merge and forces the final status to
// LOADED; a COMPLETED patch status fires sessionComplete before the merge.
// Both can fire for one patch. Every patch ends with a full-document
// replace and a sessionPatched event.
func (s *Service) Patch(ctx context.Context, projectName, sessionID string, patch Patch) (*Session, error) {
	sess, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if patch.RestartSignaled() {
		s.events.Dispatch(ctx, event.Event{
			Type: event.SessionRestarted,
			Data: PatchEventData{ProjectName: projectName, Session: sess.Clone(), Patch: patch},
		})
	}

	if st, ok := patch.StatusValue(); ok && st == StatusCompleted {
		s.events.Dispatch(ctx, event.Event{
			Type: event.SessionComplete,
			Data: PatchEventData{ProjectName: projectName, Session: sess.Clone(), Patch: patch},
		})
	}

	patch.Apply(sess)

	if err := s.sessions.Replace(ctx, sessionID, sess); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("saving session: %w", err)
	}

	s.events.Dispatch(ctx, event.Event{
		Type: event.SessionPatched,
		Data: PatchedEventData{Session: sess.Clone(), Patch: patch},
	})

	return sess, nil
}

// Upload stores one audio chunk for an item, creates its recfile and fires
// sessionFileUpload. The recfile is only created after the chunk has been
// durably written; a failure anywhere fails the whole request.
func (s *Service) Upload(ctx context.Context, sessionID, itemCode string, data []byte) (*recfile.Recfile, error) {
	if itemCode == "" {
		return nil, ErrInvalidInput
	}

	sess, err := s.find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	seq, path, err := s.audio.Append(ctx, sess.Project, sessionID, itemCode, UploadExt, data)
	if err != nil {
		return nil, fmt.Errorf("storing audio chunk: %w", err)
	}

	rec, err := s.recfiles.Create(ctx, recfile.CreateRequest{
		Project:  sess.Project,
		Session:  sessionID,
		ItemCode: itemCode,
		Sequence: seq,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("stored audio chunk", "session", sessionID, "item", itemCode, "path", path)

	s.events.Dispatch(ctx, event.Event{
		Type: event.SessionFileUpload,
		Data: UploadEventData{
			Audio:      data,
			ItemCode:   itemCode,
			FileEnding: UploadExt,
			Session:    sess.Clone(),
		},
	})

	return rec, nil
}

// ForwardLatest relocates the latest recorded chunk for an item into the
// uploads area and fires sessionFileUpload for it, so handler modules can
// forward a chunk that never reached them.
func (s *Service) ForwardLatest(ctx context.Context, sessionID, itemCode string) (string, error) {
	sess, err := s.find(ctx, sessionID)
	if err != nil {
		return "", err
	}

	dst, err := s.audio.PromoteLatest(ctx, sess.Project, sessionID, itemCode)
	if err != nil {
		return "", fmt.Errorf("relocating chunk: %w", err)
	}

	s.events.Dispatch(ctx, event.Event{
		Type: event.SessionFileUpload,
		Data: UploadEventData{
			ItemCode:   itemCode,
			FileEnding: UploadExt,
			Path:       dst,
			Session:    sess.Clone(),
		},
	})

	return dst, nil
}

func (s *Service) find(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrInvalidInput
	}
	sess, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}
