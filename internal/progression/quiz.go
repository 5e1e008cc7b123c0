package progression

import (
	"context"
	"fmt"
	"strconv"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
	"github.com/osse101/MelodyQuest_Go/internal/metrics"
)

// AnswerQuiz checks choiceID against the scene's quiz. A correct answer
// grants the quiz reward and closes the quiz until Reset; a wrong one may be retried.
func (c *Controller) AnswerQuiz(ctx context.Context, scene domain.SceneIndex, choiceID string) (domain.QuizResult, error) {
	quiz, ok := c.cfg.QuizFor(scene)
	if !ok {
		return domain.QuizResult{}, fmt.Errorf("%w: scene %d", domain.ErrQuizNotFound, scene)
	}
	choice, ok := quiz.Choice(choiceID)
	if !ok {
		return domain.QuizResult{}, fmt.Errorf("%w: %q", domain.ErrUnknownChoice, choiceID)
	}

	c.mu.Lock()
	if c.quizzes.Has(scene) {
		c.mu.Unlock()
		return domain.QuizResult{}, fmt.Errorf("%w: scene %d", domain.ErrQuizCompleted, scene)
	}

	result := domain.QuizResult{Scene: scene, Choice: choiceID, Correct: choice.Correct}
	var fx effects
	if choice.Correct {
		grantFx, added := c.grantLocked(ctx, quiz.Reward)
		c.quizzes.add(scene)
		c.persist(ctx, opFlag, func() error { return c.quizzes.save(ctx, c.store, scene) })
		result.Reward = quiz.Reward
		result.Collected = added
		fx = append(fx, func(ctx context.Context) { c.presenter.Notice(ctx, NoticeQuizCorrect) })
		fx = append(fx, grantFx...)
	} else {
		fx = append(fx, func(ctx context.Context) { c.presenter.Notice(ctx, NoticeQuizWrong) })
	}
	c.mu.Unlock()

	metrics.QuizAnswers.WithLabelValues(strconv.FormatBool(choice.Correct)).Inc()
	logger.FromContext(ctx).Info(LogMsgQuizAnswered, "scene", int(scene), "choice", choiceID, "correct", choice.Correct)

	fx.run(ctx)
	return result, nil
}
