package domain

// ProgressionState is the externally visible snapshot of a player's progress
type ProgressionState struct {
	CurrentScene   SceneIndex    `json:"current_scene"`
	SceneCount     int           `json:"scene_count"`
	CanGoBack      bool          `json:"can_go_back"`
	CanGoForward   bool          `json:"can_go_forward"`
	Ledger         []RewardToken `json:"ledger"`
	WheelSpun      bool          `json:"wheel_spun"`
	WheelRotation  float64       `json:"wheel_rotation"`
	RewardedScenes []SceneIndex  `json:"rewarded_scenes"`
	QuizzesDone    []SceneIndex  `json:"completed_quizzes"`
}

// SpinResult describes the outcome of one wheel spin
type SpinResult struct {
	Delta      float64     `json:"delta"`
	Rotation   float64     `json:"rotation"`
	SliceIndex int         `json:"slice_index"`
	Token      RewardToken `json:"token"`
	Collected  bool        `json:"collected"`
}

// QuizResult describes the outcome of one quiz answer
type QuizResult struct {
	Scene   SceneIndex  `json:"scene"`
	Choice  string      `json:"choice"`
	Correct bool        `json:"correct"`
	Reward  RewardToken `json:"reward,omitempty"`
	// Collected is true when the reward was new to the ledger
	Collected bool `json:"collected"`
}
