package api

// Response schemas. They pin down only the fields this client reads;
// servers are free to send more.

func obj(required []string, props map[string]any) map[string]any {
	req := make([]any, len(required))
	for i, r := range required {
		req[i] = r
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   req,
	}
}

var (
	str         = map[string]any{"type": "string"}
	nullableStr = map[string]any{"type": []any{"string", "null"}}
	integer     = map[string]any{"type": "integer"}
	number      = map[string]any{"type": "number"}
	boolean     = map[string]any{"type": "boolean"}
	strList     = map[string]any{"type": "array", "items": str}
	optionList  = map[string]any{"type": "array", "items": str, "minItems": 1}
)

var userDef = obj([]string{"username"}, map[string]any{
	"username":                 str,
	"full_name":                nullableStr,
	"target_language":          nullableStr,
	"level":                    nullableStr,
	"placement_test_completed": map[string]any{"type": []any{"boolean", "null"}},
})

var (
	userSchema = &Schema{Name: "user", Definition: userDef}

	authSchema = &Schema{Name: "auth-response", Definition: obj(
		[]string{"access_token", "user"},
		map[string]any{"access_token": str, "user": userDef},
	)}

	placementStartSchema = &Schema{Name: "placement-start", Definition: obj(
		[]string{"test_id", "total_questions"},
		map[string]any{
			"test_id":         map[string]any{"type": []any{"string", "integer"}},
			"total_questions": map[string]any{"type": "integer", "minimum": 1},
		},
	)}

	questionSchema = &Schema{Name: "placement-question", Definition: obj(
		[]string{"question"},
		map[string]any{
			"question": obj([]string{"question_number", "question_text", "options"}, map[string]any{
				"question_number": integer,
				"question_text":   str,
				"options":         optionList,
				"passage":         nullableStr,
			}),
			"current_question_number": integer,
			"has_next":                boolean,
		},
	)}

	answerAckSchema = &Schema{Name: "placement-answer", Definition: obj(
		[]string{"has_next"},
		map[string]any{"has_next": boolean},
	)}

	placementResultSchema = &Schema{Name: "placement-result", Definition: obj(
		[]string{"determined_level"},
		map[string]any{
			"determined_level": str,
			"section_scores": map[string]any{
				"type": "array",
				"items": obj([]string{"section"}, map[string]any{
					"section":          str,
					"score_percentage": number,
					"correct_answers":  integer,
					"total_questions":  integer,
				}),
			},
			"recommendations": strList,
		},
	)}

	flashcardSchema = &Schema{Name: "flashcard", Definition: obj(
		[]string{"word", "options", "correct_option_index"},
		map[string]any{
			"word":                 str,
			"example_sentence":     nullableStr,
			"options":              optionList,
			"correct_option_index": map[string]any{"type": "integer", "minimum": 0},
			"image_data":           nullableStr,
		},
	)}

	explanationSchema = &Schema{Name: "vocabulary-explanation", Definition: obj(
		[]string{"explanation"},
		map[string]any{"explanation": str},
	)}

	conversationStartSchema = &Schema{Name: "conversation-start", Definition: obj(
		[]string{"session_id", "opening_message"},
		map[string]any{
			"session_id":      map[string]any{"type": []any{"string", "integer"}},
			"opening_message": str,
		},
	)}

	conversationReplySchema = &Schema{Name: "conversation-reply", Definition: obj(
		[]string{"reply"},
		map[string]any{
			"reply":                  str,
			"corrected_user_message": nullableStr,
			"tips":                   nullableStr,
		},
	)}

	grammarQuestionSchema = &Schema{Name: "grammar-question", Definition: obj(
		[]string{"question_text", "options", "correct_option_index"},
		map[string]any{
			"question_text":        str,
			"options":              optionList,
			"correct_option_index": map[string]any{"type": "integer", "minimum": 0},
			"explanation":          nullableStr,
		},
	)}

	writingFeedbackSchema = &Schema{Name: "writing-feedback", Definition: obj(
		[]string{"corrected_text", "overall_comment"},
		map[string]any{
			"corrected_text":     str,
			"overall_comment":    str,
			"inline_explanation": nullableStr,
			"score":              map[string]any{"type": []any{"number", "null"}},
		},
	)}

	phraseSchema = &Schema{Name: "target-phrase", Definition: obj(
		[]string{"target_phrase"},
		map[string]any{"target_phrase": str},
	)}

	pronunciationSchema = &Schema{Name: "pronunciation-result", Definition: obj(
		[]string{"score", "transcript", "feedback"},
		map[string]any{
			"score":      number,
			"transcript": str,
			"feedback":   str,
			"word_level_feedback": map[string]any{
				"type": []any{"array", "null"},
				"items": obj([]string{"word"}, map[string]any{
					"word":  str,
					"issue": str,
					"tip":   str,
				}),
			},
		},
	)}

	progressSummarySchema = &Schema{Name: "progress-summary", Definition: obj(
		[]string{"current_level", "can_advance"},
		map[string]any{
			"current_level":    nullableStr,
			"next_level":       nullableStr,
			"can_advance":      boolean,
			"overall_progress": number,
			"total_xp":         integer,
			"modules":          map[string]any{"type": []any{"array", "null"}},
		},
	)}

	historySchema = &Schema{Name: "level-history", Definition: map[string]any{
		"type": "array",
		"items": obj([]string{"level"}, map[string]any{
			"level":          str,
			"days_at_level":  integer,
			"weighted_score": map[string]any{"type": []any{"number", "null"}},
		}),
	}}

	advancementSchema = &Schema{Name: "advancement", Definition: obj(
		[]string{"new_level"},
		map[string]any{
			"old_level":           nullableStr,
			"new_level":           str,
			"xp_earned":           integer,
			"celebration_message": nullableStr,
		},
	)}

	cheatCodeSchema = &Schema{Name: "cheat-code", Definition: obj(
		[]string{"message"},
		map[string]any{"message": str},
	)}
)
