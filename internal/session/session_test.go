package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stenpav109-lab/DomRemonta-Rostov-bot1/internal/models"
)

func TestResetKeepsCompletedFlag(t *testing.T) {
	size := 72
	s := Session{
		UserID:             1,
		State:              "budget",
		Source:             "vk",
		SurveyCompleted:    true,
		WaitingForQuestion: true,
		Answers:            Answers{Geography: "Аксай", Metrage: &size},
	}

	s.Reset("")

	assert.Equal(t, int64(1), s.UserID)
	assert.True(t, s.SurveyCompleted)
	assert.Equal(t, models.DefaultSource, s.Source)
	assert.False(t, s.WaitingForQuestion)
	assert.Empty(t, s.State)
	assert.Equal(t, Answers{}, s.Answers)
}

func TestStoreNewSessionDefaults(t *testing.T) {
	st := NewStore()
	s := st.Get(42)
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, models.DefaultSource, s.Source)
	assert.False(t, s.SurveyCompleted)
	assert.Equal(t, 1, st.Len())
}

func TestStoreWithKeepsChangesOnError(t *testing.T) {
	st := NewStore()
	boom := errors.New("boom")

	err := st.With(1, func(s *Session) error {
		s.State = "geography"
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "geography", st.Get(1).State)
}

func TestStoreSerializesPerUser(t *testing.T) {
	st := NewStore()
	var wg sync.WaitGroup

	// unsynchronized read-modify-write inside With must not lose updates
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.With(7, func(s *Session) error {
				n := 0
				if s.Answers.Metrage != nil {
					n = *s.Answers.Metrage
				}
				n++
				s.Answers.Metrage = &n
				return nil
			})
		}()
	}
	wg.Wait()

	s := st.Get(7)
	require.NotNil(t, s.Answers.Metrage)
	assert.Equal(t, 100, *s.Answers.Metrage)
}
