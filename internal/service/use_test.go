package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altusecase/altuse-server/internal/domain"
)

func TestUseService_Vote(t *testing.T) {
	itemSvc, testStore, _, _ := setupItemTest(t)
	useSvc := NewUseService(testStore, testLogger())
	ctx := context.Background()

	result, err := itemSvc.Generate(ctx, "Mason Jar")
	require.NoError(t, err)
	require.NotEmpty(t, result.Item.Uses)
	useID := result.Item.Uses[0].ID

	use, err := useSvc.Vote(ctx, useID, domain.VoteYes)
	require.NoError(t, err)
	assert.Equal(t, 1, use.VotesYes)
	assert.Equal(t, 0, use.VotesNo)

	use, err = useSvc.Vote(ctx, useID, domain.VoteNo)
	require.NoError(t, err)
	assert.Equal(t, 1, use.VotesYes)
	assert.Equal(t, 1, use.VotesNo)

	// Voting is anonymous and unlimited.
	use, err = useSvc.Vote(ctx, useID, domain.VoteYes)
	require.NoError(t, err)
	assert.Equal(t, 2, use.VotesYes)
}

func TestUseService_Vote_InvalidKind(t *testing.T) {
	_, testStore, _, _ := setupItemTest(t)
	useSvc := NewUseService(testStore, testLogger())

	_, err := useSvc.Vote(context.Background(), "use-anything", domain.VoteKind("maybe"))
	assert.Error(t, err)
}

func TestUseService_Vote_UnknownUse(t *testing.T) {
	_, testStore, _, _ := setupItemTest(t)
	useSvc := NewUseService(testStore, testLogger())

	_, err := useSvc.Vote(context.Background(), "use-missing", domain.VoteYes)
	assert.Error(t, err)
}
