package report

import (
	"bytes"
	"testing"
	"time"

	"slidequiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	assert.Equal(t, "Medium Quiz Results", Title(domain.DifficultyMedium))
	assert.Equal(t, "Hard Quiz Results", Title(domain.DifficultyHard))
	assert.Equal(t, "Quiz Results", Title(""))
}

func TestRender(t *testing.T) {
	selected := "Light"
	result := &domain.QuizResult{
		ID:         "01HGZ8VNRYXS8QKNJV5GRWPWDQ",
		SessionID:  "01HGZ8VNRYXS8QKNJV5GRWPWDR",
		Difficulty: domain.DifficultyMedium,
		Score:      1,
		Total:      2,
		Items: []domain.QuizResultItem{
			{Question: "What does chlorophyll absorb?", Selected: &selected, Correct: "Light", IsCorrect: true},
			{Question: "Where does the Calvin cycle occur – stroma or café?", Selected: nil, Correct: "Stroma"},
		},
		SubmittedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	data, err := NewGenerator(DefaultConfig()).Render(result)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(data[len(data)-16:], []byte("%%EOF")))
}

func TestRender_NilResult(t *testing.T) {
	_, err := NewGenerator(DefaultConfig()).Render(nil)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))
}
