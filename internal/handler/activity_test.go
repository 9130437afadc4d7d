package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/domain/activity"
	"github.com/spraklab/wsrng-server/internal/domain/session"
	"github.com/spraklab/wsrng-server/internal/event"
	"github.com/spraklab/wsrng-server/internal/handler"
	"github.com/spraklab/wsrng-server/internal/repository/mocks"
)

func TestActivity_RecordsSessionCreated(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	var appended *activity.Entry
	repo.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		appended = args.Get(1).(*activity.Entry)
	}).Return(nil)

	a := handler.NewActivity(repo, discardLogger())

	err := a.Handle(context.Background(), event.Event{
		Type: event.SessionCreated,
		Data: session.CreatedEventData{
			Session: &session.Session{SessionID: "S1", Project: "P1"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "sessionCreated", appended.EventType)
	require.Equal(t, "P1", appended.Project)
	require.Equal(t, "S1", appended.SessionID)
}

func TestActivity_RecordsUploadWithItemCode(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	var appended *activity.Entry
	repo.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		appended = args.Get(1).(*activity.Entry)
	}).Return(nil)

	a := handler.NewActivity(repo, discardLogger())

	err := a.Handle(context.Background(), uploadEvent([]byte("audio")))
	require.NoError(t, err)

	require.Equal(t, "sessionFileUpload", appended.EventType)
	require.Equal(t, "VJzb", appended.ItemCode)
	require.Equal(t, "S1", appended.SessionID)
}

func TestActivity_RecordsPatchDetails(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	var appended *activity.Entry
	repo.On("Append", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		appended = args.Get(1).(*activity.Entry)
	}).Return(nil)

	a := handler.NewActivity(repo, discardLogger())

	err := a.Handle(context.Background(), event.Event{
		Type: event.SessionComplete,
		Data: session.PatchEventData{
			ProjectName: "P1",
			Session:     &session.Session{SessionID: "S1", Project: "P1"},
			Patch:       session.Patch{"status": "COMPLETED"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "sessionComplete", appended.EventType)
	require.JSONEq(t, `{"status": "COMPLETED"}`, appended.Details)
}

func TestActivity_PropagatesRepositoryFailure(t *testing.T) {
	repo := &mocks.ActivityRepository{}
	repo.On("Append", mock.Anything, mock.Anything).Return(context.DeadlineExceeded)

	a := handler.NewActivity(repo, discardLogger())

	err := a.Handle(context.Background(), event.Event{
		Type: event.SessionCreated,
		Data: session.CreatedEventData{Session: &session.Session{SessionID: "S1"}},
	})
	require.Error(t, err)
}
