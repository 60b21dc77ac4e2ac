package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRepository_Create(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage)

	// Given: a finished match record
	match := &entity.Match{
		ID:         "123",
		Winner:     entity.PlayerOne,
		Board:      "1,1,1;2,2,0;0,0,0",
		FinishedAt: time.Now().UTC().Truncate(time.Second),
	}

	// When: Create is called
	err := matchRepo.Create(ctx, match)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestMatchRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// Given: a stored match record
		match := &entity.Match{
			ID:         "123",
			Winner:     entity.CellEmpty,
			Board:      "1,2,1;1,2,2;2,1,1",
			FinishedAt: time.Now().UTC().Truncate(time.Second),
		}

		err := matchRepo.Create(ctx, match)
		require.NoError(t, err)

		// When: GetByID is called with the existing ID
		retrievedMatch, err := matchRepo.GetByID(ctx, match.ID)

		// Then: the retrieved record should match the saved one
		require.NoError(t, err)
		require.Equal(t, match.ID, retrievedMatch.ID)
		require.Equal(t, match.Winner, retrievedMatch.Winner)
		require.Equal(t, match.Board, retrievedMatch.Board)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		matchRepo := NewMatchRepository(st.Storage)

		// When: GetByID is called with a non-existent ID
		retrievedMatch, err := matchRepo.GetByID(ctx, "9999999")

		// Then: an ErrMatchNotFound error should be returned
		require.Error(t, err)
		assert.Equal(t, ErrMatchNotFound, err)
		assert.Empty(t, retrievedMatch.ID)
	})
}

func TestMatchRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	matchRepo := NewMatchRepository(st.Storage)

	// Given: a stored match record
	match := &entity.Match{
		ID:     "123",
		Winner: entity.PlayerTwo,
		Board:  "2,2,2;1,1,0;0,0,1",
	}

	err := matchRepo.Create(ctx, match)
	require.NoError(t, err)

	// When: DeleteByID is called with the existing ID
	err = matchRepo.DeleteByID(ctx, match.ID)

	// Then: the record is gone
	require.NoError(t, err)

	_, err = matchRepo.GetByID(ctx, match.ID)
	require.Error(t, err)
	assert.Equal(t, ErrMatchNotFound, err)
}
