package validation

import (
	"encoding/json"
	"testing"

	"slidequiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateSlides(t *testing.T) {
	twoSlides := `{"slides":[
		{"title":"Light Reactions","content":["Capture light","Split water","Make ATP"]},
		{"title":"Calvin Cycle","content":["Fix carbon","Use ATP","Build sugar"]}
	]}`

	t.Run("exact count", func(t *testing.T) {
		slides, err := ValidateSlides(json.RawMessage(twoSlides), 2)
		require.NoError(t, err)
		require.Len(t, slides, 2)
		assert.Equal(t, "Light Reactions", slides[0].Title)
		assert.Equal(t, []string{"Fix carbon", "Use ATP", "Build sugar"}, slides[1].Content)
	})

	t.Run("count mismatch", func(t *testing.T) {
		slides, err := ValidateSlides(json.RawMessage(twoSlides), 3)
		assert.Nil(t, slides)
		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.CodeCardinalityMismatch))
		assert.True(t, domain.IsMalformedResponse(err))
		assert.Contains(t, err.Error(), "Requested 3 slides but got 2")
	})

	malformed := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `slides please`},
		{name: "array root", raw: `[{"title":"a","content":[]}]`},
		{name: "missing slides", raw: `{"pages":[]}`},
		{name: "slides not array", raw: `{"slides":{"title":"a"}}`},
		{name: "slides null", raw: `{"slides":null}`},
		{name: "missing title", raw: `{"slides":[{"content":["a"]}]}`},
		{name: "missing content", raw: `{"slides":[{"title":"a"}]}`},
		{name: "title not string", raw: `{"slides":[{"title":7,"content":["a"]}]}`},
		{name: "content not array", raw: `{"slides":[{"title":"a","content":"a, b"}]}`},
		{name: "content element not string", raw: `{"slides":[{"title":"a","content":[1,2]}]}`},
		{name: "element not object", raw: `{"slides":["just a title"]}`},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			slides, err := ValidateSlides(json.RawMessage(tt.raw), 1)
			assert.Nil(t, slides)
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, domain.CodeModelResponseMalformed))
		})
	}
}

func TestValidateQuiz(t *testing.T) {
	logger := zap.NewNop()

	t.Run("valid questions", func(t *testing.T) {
		raw := `{"mcqs":[
			{"mcq":"What does chlorophyll absorb?","options":{"a":"Light","b":"Water","c":"Oxygen","d":"Sugar"},"correct":"a"},
			{"mcq":"Where does the Calvin cycle occur?","options":{"A":"Stroma","B":"Nucleus","C":"Cell wall","D":"Vacuole"},"correct":" A "}
		]}`
		questions, err := ValidateQuiz(json.RawMessage(raw), logger)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "Light", questions[0].CorrectText())
		assert.Equal(t, "a", questions[1].Correct)
		assert.Equal(t, "Stroma", questions[1].Options["a"])
	})

	t.Run("invalid records are skipped", func(t *testing.T) {
		raw := `{"mcqs":[
			{"mcq":"Bad letter","options":{"a":"1","b":"2","c":"3","d":"4"},"correct":"e"},
			{"mcq":"Three options","options":{"a":"1","b":"2","c":"3"},"correct":"a"},
			{"mcq":"Numeric options","options":{"a":1,"b":2,"c":3,"d":4},"correct":"a"},
			{"mcq":"Good one","options":{"a":"1","b":"2","c":"3","d":"4"},"correct":"d"}
		]}`
		questions, err := ValidateQuiz(json.RawMessage(raw), logger)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "Good one", questions[0].Question)
	})

	degraded := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{"mcqs": [`},
		{name: "missing mcqs", raw: `{"questions":[]}`},
		{name: "mcqs not array", raw: `{"mcqs":"none"}`},
		{name: "empty mcqs", raw: `{"mcqs":[]}`},
		{name: "all invalid", raw: `{"mcqs":[{"mcq":"x","options":{},"correct":"a"}]}`},
	}
	for _, tt := range degraded {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := ValidateQuiz(json.RawMessage(tt.raw), logger)
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, domain.CodeModelResponseMalformed))
			assert.NotNil(t, questions)
			assert.Empty(t, questions)
		})
	}
}
