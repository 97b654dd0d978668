package service

import "teamfeedback-backend/internal/model"

func scale(n int) *int { return &n }

// ListDefaultTemplates returns the built-in templates. Each call returns a
// fresh copy, so callers may customize the result freely. Ids are fixed so
// a seeded catalog keeps the ids this list advertises.
func ListDefaultTemplates() []model.Template {
	return []model.Template{
		{
			ID:            "7d1c2f4e-3b8a-4c61-9f2e-5a0b6c7d8e01",
			Name:          "Post-Match Review",
			Description:   "Player reflection after a competitive match",
			Type:          "match",
			SectionCount:  3,
			QuestionCount: 8,
			IsDefault:     true,
			Structure: model.Structure{
				{Title: "Performance", Questions: []model.Question{
					{Type: model.QuestionTypeRating, Text: "How would you rate your overall performance?", Scale: scale(10)},
					{Type: model.QuestionTypeRating, Text: "How would you rate your energy levels during the match?", Scale: scale(10)},
					{Type: model.QuestionTypeText, Text: "What went well for you today?"},
				}},
				{Title: "Team Play", Questions: []model.Question{
					{Type: model.QuestionTypeRating, Text: "How well did the team communicate on the field?", Scale: scale(10)},
					{Type: model.QuestionTypeMultipleChoice, Text: "Which phase of play felt strongest?", Options: []string{"Attack", "Midfield", "Defence", "Set pieces"}},
					{Type: model.QuestionTypeYesNo, Text: "Did you understand your role in the game plan?"},
				}},
				{Title: "Looking Ahead", Questions: []model.Question{
					{Type: model.QuestionTypeText, Text: "What is one thing you want to improve before the next match?"},
					{Type: model.QuestionTypeYesNo, Text: "Are you carrying any knocks or injuries?"},
				}},
			},
		},
		{
			ID:            "7d1c2f4e-3b8a-4c61-9f2e-5a0b6c7d8e02",
			Name:          "Training Session Feedback",
			Description:   "Quick check-in after a training session",
			Type:          "training",
			SectionCount:  2,
			QuestionCount: 5,
			IsDefault:     true,
			Structure: model.Structure{
				{Title: "Session", Questions: []model.Question{
					{Type: model.QuestionTypeRating, Text: "How useful was today's session?", Scale: scale(5)},
					{Type: model.QuestionTypeMultipleChoice, Text: "How intense did the session feel?", Options: []string{"Too easy", "About right", "Too hard"}},
					{Type: model.QuestionTypeText, Text: "Which drill helped you the most?"},
				}},
				{Title: "Wellbeing", Questions: []model.Question{
					{Type: model.QuestionTypeRating, Text: "How fresh do you feel after training?", Scale: scale(5)},
					{Type: model.QuestionTypeYesNo, Text: "Did you get enough rest before the session?"},
				}},
			},
		},
		{
			ID:            "7d1c2f4e-3b8a-4c61-9f2e-5a0b6c7d8e03",
			Name:          "Coach Evaluation",
			Description:   "Anonymous feedback from players on coaching",
			Type:          "general",
			SectionCount:  2,
			QuestionCount: 5,
			IsDefault:     true,
			Structure: model.Structure{
				{Title: "Communication", Questions: []model.Question{
					{Type: model.QuestionTypeRating, Text: "How clear are the coach's instructions?", Scale: scale(10)},
					{Type: model.QuestionTypeYesNo, Text: "Do you feel comfortable raising concerns with the coaching staff?"},
				}},
				{Title: "Development", Questions: []model.Question{
					{Type: model.QuestionTypeRating, Text: "How well is your individual development supported?", Scale: scale(10)},
					{Type: model.QuestionTypeMultipleChoice, Text: "What would you like more of?", Options: []string{"Tactical work", "Fitness", "Technical drills", "Video analysis"}},
					{Type: model.QuestionTypeText, Text: "Any other feedback for the coaching staff?"},
				}},
			},
		},
		{
			ID:            "7d1c2f4e-3b8a-4c61-9f2e-5a0b6c7d8e04",
			Name:          "Season Review",
			Description:   "End-of-season reflection for players",
			Type:          "general",
			SectionCount:  3,
			QuestionCount: 6,
			IsDefault:     true,
			Structure: model.Structure{
				{Title: "Season", Questions: []model.Question{
					{Type: model.QuestionTypeRating, Text: "How satisfied are you with your season?", Scale: scale(10)},
					{Type: model.QuestionTypeText, Text: "What was your highlight of the season?"},
				}},
				{Title: "Growth", Questions: []model.Question{
					{Type: model.QuestionTypeMultipleChoice, Text: "Where did you improve most?", Options: []string{"Fitness", "Technique", "Game understanding", "Leadership"}},
					{Type: model.QuestionTypeText, Text: "What will you work on in the off-season?"},
				}},
				{Title: "Next Season", Questions: []model.Question{
					{Type: model.QuestionTypeYesNo, Text: "Do you plan to return next season?"},
					{Type: model.QuestionTypeRating, Text: "How likely are you to recommend the club to a friend?", Scale: scale(10)},
				}},
			},
		},
	}
}
