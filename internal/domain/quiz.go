package domain

// SceneReward grants Token the first time its scene is entered
type SceneReward struct {
	Scene SceneIndex  `json:"scene"`
	Token RewardToken `json:"token"`
}

// QuizChoice is one answer option of a quiz
type QuizChoice struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Correct bool   `json:"correct"`
}

// Quiz is a multiple-choice question attached to a scene. A correct answer
// grants Reward once until the next reset.
type Quiz struct {
	Scene    SceneIndex   `json:"scene"`
	Question string       `json:"question"`
	Choices  []QuizChoice `json:"choices"`
	Reward   RewardToken  `json:"reward"`
}

// Choice looks up a choice by id
func (q Quiz) Choice(id string) (QuizChoice, bool) {
	for _, c := range q.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return QuizChoice{}, false
}
