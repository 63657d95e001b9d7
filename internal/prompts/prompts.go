// Package prompts builds the instructions sent to the chat model.
package prompts

import (
	"encoding/json"
	"fmt"

	"slidequiz/internal/domain"
)

const slidesPrompt = `
Text: %s
Create a structured PowerPoint presentation with exactly %d slides.
Follow these rules:
1. Slide titles should be 3-7 words
2. Each slide should have 3-5 bullet points
3. Content must be extracted from the text
4. Use professional business language

Format your response EXACTLY like this JSON:
%s
Replace the example content with real content from the text.
`

const quizPrompt = `
Text: %s
You are an expert in generating MCQ type quiz on the basis of provided content.
Create a quiz of %d multiple choice questions with difficulty level: %s.
Ensure questions are unique and relevant to the text.
Format your response exactly like this JSON structure:
%s
`

var (
	slidesExample = mustIndent(map[string]any{
		"slides": []domain.SlideRecord{
			{
				Title:   "Clear Slide Title 1",
				Content: []string{"Concise point 1", "Relevant point 2", "Key takeaway 3"},
			},
		},
	})
	quizExample = mustIndent(map[string]any{
		"mcqs": []domain.MCQRecord{
			{
				Question: "multiple choice question1",
				Options: map[string]string{
					"a": "choice here1",
					"b": "choice here2",
					"c": "choice here3",
					"d": "choice here4",
				},
				Correct: "correct choice option in the form of a, b, c or d",
			},
		},
	})
)

func mustIndent(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Slides asks for exactly count slides drawn from text.
func Slides(text string, count int) string {
	return fmt.Sprintf(slidesPrompt, text, count, slidesExample)
}

// Quiz asks for count multiple choice questions at the given difficulty.
func Quiz(text string, difficulty domain.Difficulty, count int) string {
	return fmt.Sprintf(quizPrompt, text, count, difficulty, quizExample)
}
