package handler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spraklab/wsrng-server/internal/handler"
	"github.com/spraklab/wsrng-server/internal/repository/mocks"
)

func TestBuild_InstantiatesEnabledModulesInOrder(t *testing.T) {
	handlers, err := handler.Build([]string{"activity", "visp"}, handler.Deps{
		Logger:   discardLogger(),
		Activity: &mocks.ActivityRepository{},
	})
	require.NoError(t, err)
	require.Len(t, handlers, 2)
	require.Equal(t, "activity", handlers[0].Name())
	require.Equal(t, "visp", handlers[1].Name())
}

func TestBuild_UnknownModule(t *testing.T) {
	_, err := handler.Build([]string{"nope"}, handler.Deps{Logger: discardLogger()})
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown handler module "nope"`)
	require.Contains(t, err.Error(), "activity, visp")
}

func TestBuild_ActivityRequiresRepository(t *testing.T) {
	_, err := handler.Build([]string{"activity"}, handler.Deps{Logger: discardLogger()})
	require.Error(t, err)
}

func TestBuild_EmptyListYieldsNoHandlers(t *testing.T) {
	handlers, err := handler.Build(nil, handler.Deps{Logger: discardLogger()})
	require.NoError(t, err)
	require.Empty(t, handlers)
}
