package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingua/internal/api"
	"github.com/abhisek/lingua/internal/testutil"
)

func card(word string) *api.Flashcard {
	return &api.Flashcard{Word: word, Options: []string{"dog", "cat", "fish"}, CorrectOptionIndex: 0}
}

func TestFlashcards_AdvanceUsesPrefetch(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("NextFlashcard").Return(card("perro"), nil).Once()
	m.On("NextFlashcard").Return(card("gato"), nil).Once()

	f := NewFlashcards(m, nil)
	first, err := f.LoadFirst(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "perro", first.Word)

	f.Prefetch(context.Background())
	next, err := f.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gato", next.Word)

	m.AssertNumberOfCalls(t, "NextFlashcard", 2)
}

func TestFlashcards_FailedPrefetchFallsBack(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("NextFlashcard").Return(card("perro"), nil).Once()
	m.On("NextFlashcard").Return(nil, errors.New("flaky")).Once()
	m.On("NextFlashcard").Return(card("pez"), nil).Once()

	f := NewFlashcards(m, nil)
	_, err := f.LoadFirst(context.Background())
	require.NoError(t, err)

	f.Prefetch(context.Background())
	next, err := f.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pez", next.Word)
	m.AssertNumberOfCalls(t, "NextFlashcard", 3)
}

func TestFlashcards_UnauthorizedSurfaces(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("NextFlashcard").Return(nil, api.ErrUnauthorized)

	f := NewFlashcards(m, nil)
	f.Prefetch(context.Background())
	_, err := f.Advance(context.Background())
	assert.True(t, api.IsUnauthorized(err))
}

func TestFlashcards_AdvanceWithoutPrefetch(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("NextFlashcard").Return(card("perro"), nil)

	f := NewFlashcards(m, nil)
	_, err := f.Advance(context.Background())
	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "NextFlashcard", 1)
}

func TestFlashcards_Check(t *testing.T) {
	f := NewFlashcards(new(testutil.MockAPI), nil)
	c := card("perro")

	o, err := f.Check(c, 0)
	require.NoError(t, err)
	assert.True(t, o.IsCorrect())

	o, err = f.Check(c, 2)
	require.NoError(t, err)
	assert.False(t, o.IsCorrect())
	assert.Equal(t, 0, o.Correct)

	_, err = f.Check(c, 3)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestFlashcards_Explain(t *testing.T) {
	m := new(testutil.MockAPI)
	m.On("AnswerFlashcard", api.FlashcardAnswer{Word: "perro", SelectedOptionIndex: 1, CorrectOptionIndex: 0}).
		Return(&api.Explanation{Explanation: "perro is dog"}, nil)

	f := NewFlashcards(m, nil)
	exp, err := f.Explain(context.Background(), card("perro"), Outcome{Selected: 1, Correct: 0})
	require.NoError(t, err)
	assert.Equal(t, "perro is dog", exp)
}
