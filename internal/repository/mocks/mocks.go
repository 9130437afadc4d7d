// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/spraklab/wsrng-server/internal/domain/activity"
	"github.com/spraklab/wsrng-server/internal/domain/project"
	"github.com/spraklab/wsrng-server/internal/domain/recfile"
	"github.com/spraklab/wsrng-server/internal/domain/resource"
	"github.com/spraklab/wsrng-server/internal/domain/script"
	"github.com/spraklab/wsrng-server/internal/domain/session"
)

// SessionRepository is a mock for session.Repository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Find(ctx context.Context, sessionID string) (*session.Session, error) {
	args := m.Called(ctx, sessionID)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Insert(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) Replace(ctx context.Context, sessionID string, sess *session.Session) error {
	args := m.Called(ctx, sessionID, sess)
	return args.Error(0)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Find(ctx context.Context, name string) (*project.Project, error) {
	args := m.Called(ctx, name)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Insert(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

// RecfileRepository is a mock for recfile.Repository.
type RecfileRepository struct {
	mock.Mock
}

func (m *RecfileRepository) Insert(ctx context.Context, rec *recfile.Recfile) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RecfileRepository) List(ctx context.Context, projectName, sessionID string) ([]recfile.Recfile, error) {
	args := m.Called(ctx, projectName, sessionID)
	if recs, ok := args.Get(0).([]recfile.Recfile); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

// ScriptRepository is a mock for script.Repository.
type ScriptRepository struct {
	mock.Mock
}

func (m *ScriptRepository) Find(ctx context.Context, scriptID string) (*script.Script, error) {
	args := m.Called(ctx, scriptID)
	if scr, ok := args.Get(0).(*script.Script); ok {
		return scr, args.Error(1)
	}
	return nil, args.Error(1)
}

// ResourceRepository is a mock for resource.Repository.
type ResourceRepository struct {
	mock.Mock
}

func (m *ResourceRepository) Insert(ctx context.Context, res *resource.Resource) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *ResourceRepository) Find(ctx context.Context, projectName, name string) (*resource.Resource, error) {
	args := m.Called(ctx, projectName, name)
	if res, ok := args.Get(0).(*resource.Resource); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Append(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
