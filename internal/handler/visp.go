package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/spraklab/wsrng-server/internal/config"
	"github.com/spraklab/wsrng-server/internal/domain/session"
	"github.com/spraklab/wsrng-server/internal/event"
)

// gitlabPathPrefix is where the visp backend expects unimported audio to
// land in the project repository.
const gitlabPathPrefix = "Data/unimported_audio/emudb-sessions"

const outboundTimeout = 30 * time.Second

// Visp integrates with the visp system: uploaded chunks are committed to
// the project's GitLab repository, and session completion is reported to
// the session-manager service so it imports the audio. All outbound work
// runs on its own goroutine; the triggering request never waits for it.
type Visp struct {
	cfg     config.VispConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[int]
	logger  *slog.Logger
}

// NewVisp creates the visp handler module.
func NewVisp(cfg config.VispConfig, client *http.Client, logger *slog.Logger) *Visp {
	if client == nil {
		client = &http.Client{Timeout: outboundTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	breaker := gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:    "visp-gitlab",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Visp{cfg: cfg, client: client, breaker: breaker, logger: logger}
}

// Name implements event.Handler.
func (v *Visp) Name() string { return "visp" }

// Handle implements event.Handler.
func (v *Visp) Handle(ctx context.Context, evt event.Event) error {
	switch evt.Type {
	case event.SessionFileUpload:
		data, ok := evt.Data.(session.UploadEventData)
		if !ok {
			return fmt.Errorf("unexpected payload type %T for %s", evt.Data, evt.Type)
		}
		event.Go(v.logger, "visp.commit", func() {
			v.commitUpload(data)
		})
	case event.SessionComplete:
		data, ok := evt.Data.(session.PatchEventData)
		if !ok {
			return fmt.Errorf("unexpected payload type %T for %s", evt.Data, evt.Type)
		}
		event.Go(v.logger, "visp.import", func() {
			v.importSessionAudio(data)
		})
	}
	return nil
}

type commitAction struct {
	Action   string `json:"action"`
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type commitRequest struct {
	Branch        string         `json:"branch"`
	CommitMessage string         `json:"commit_message"`
	Actions       []commitAction `json:"actions"`
}

func (v *Visp) commitUpload(data session.UploadEventData) {
	audio := data.Audio
	if len(audio) == 0 && data.Path != "" {
		var err error
		audio, err = os.ReadFile(data.Path)
		if err != nil {
			v.logger.Error("failed to read relocated chunk for commit", "path", data.Path, "error", err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*outboundTimeout)
	defer cancel()

	status, err := v.gitlabCommit(ctx, data, audio, "create")
	if err != nil {
		v.logger.Error("gitlab commit failed", "session", data.Session.SessionID,
			"item", data.ItemCode, "error", err)
		return
	}
	if status == http.StatusBadRequest {
		// The file already exists from an earlier pass; retry as update.
		v.logger.Info("file already exists in gitlab, trying to update",
			"session", data.Session.SessionID, "item", data.ItemCode)
		status, err = v.gitlabCommit(ctx, data, audio, "update")
		if err != nil {
			v.logger.Error("gitlab update commit failed", "session", data.Session.SessionID,
				"item", data.ItemCode, "error", err)
			return
		}
	}

	if status == http.StatusCreated {
		v.logger.Info("committed recfile to gitlab",
			"session", data.Session.SessionID, "item", data.ItemCode)
	} else {
		v.logger.Error("gitlab commit rejected", "status", status,
			"session", data.Session.SessionID, "item", data.ItemCode)
	}
}

// gitlabCommit posts one commit to the GitLab commits API. Transport
// failures and 5xx responses count against the circuit breaker; a 400 is
// handed back to the caller so it can retry the action as an update.
func (v *Visp) gitlabCommit(ctx context.Context, data session.UploadEventData, audio []byte, action string) (int, error) {
	payload := commitRequest{
		Branch:        v.cfg.GitLabBranch,
		CommitMessage: "recfile from webspeechrecorder",
		Actions: []commitAction{{
			Action:   action,
			FilePath: fmt.Sprintf("%s/%s/%s.%s", gitlabPathPrefix, data.Session.SessionID, data.ItemCode, data.FileEnding),
			Content:  base64.StdEncoding.EncodeToString(audio),
			Encoding: "base64",
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encoding commit: %w", err)
	}

	requestURL := fmt.Sprintf("%s/api/v4/projects/%s/repository/commits",
		strings.TrimRight(v.cfg.GitLabURL, "/"), url.PathEscape(data.Session.Project))

	return v.breaker.Execute(func() (int, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
		if err != nil {
			return 0, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("PRIVATE-TOKEN", v.cfg.GitLabToken)

		resp, err := v.client.Do(req)
		if err != nil {
			return 0, err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return resp.StatusCode, fmt.Errorf("gitlab returned %d", resp.StatusCode)
		}
		return resp.StatusCode, nil
	})
}

func (v *Visp) importSessionAudio(data session.PatchEventData) {
	v.logger.Debug("session complete, telling session-manager to import audio files",
		"session", data.Session.SessionID, "project", data.ProjectName)

	form := url.Values{
		"projectId": {data.ProjectName},
		"sessionId": {data.Session.SessionID},
	}

	ctx, cancel := context.WithTimeout(context.Background(), outboundTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.cfg.SessionManagerURL, strings.NewReader(form.Encode()))
	if err != nil {
		v.logger.Error("failed to build import request", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("session-manager import request failed",
			"session", data.Session.SessionID, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		v.logger.Error("session-manager rejected import request",
			"session", data.Session.SessionID, "status", resp.StatusCode)
		return
	}
	v.logger.Info("session-manager import requested", "session", data.Session.SessionID)
}
