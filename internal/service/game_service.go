//go:generate mockery --name GameService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"go_vocab_game/internal/game"
	"go_vocab_game/internal/middleware"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/store"
)

const saveTimeout = 5 * time.Second

// MatchSessionView はマッチゲームのセッション状態
type MatchSessionView struct {
	SessionID uuid.UUID          `json:"session_id"`
	Game      game.MatchSnapshot `json:"game"`
	Save      SaveView           `json:"save"`
}

// SpellSessionView はスペルゲームのセッション状態
type SpellSessionView struct {
	SessionID uuid.UUID          `json:"session_id"`
	Game      game.SpellSnapshot `json:"game"`
	Save      SaveView           `json:"save"`
}

// SaveView は完了時のセッション保存結果
type SaveView struct {
	Status model.SaveStatus      `json:"status"`
	Error  string                `json:"error,omitempty"`
	Record *model.LearningRecord `json:"record,omitempty"`
}

// GameService はゲームセッションのレジストリです。完了したセッションはストアへ保存します。
type GameService interface {
	StartMatch(ctx context.Context, learnerID uuid.UUID, words []model.Word, mode string) (*MatchSessionView, error)
	GetMatch(ctx context.Context, learnerID, sessionID uuid.UUID) (*MatchSessionView, error)
	ClickCard(ctx context.Context, learnerID, sessionID uuid.UUID, cardID string) (*MatchSessionView, error)
	ResetMatch(ctx context.Context, learnerID, sessionID uuid.UUID) (*MatchSessionView, error)
	ToggleMatchMode(ctx context.Context, learnerID, sessionID uuid.UUID) (*MatchSessionView, error)

	StartSpell(ctx context.Context, learnerID uuid.UUID, words []model.Word) (*SpellSessionView, error)
	GetSpell(ctx context.Context, learnerID, sessionID uuid.UUID) (*SpellSessionView, error)
	SubmitSpell(ctx context.Context, learnerID, sessionID uuid.UUID, answer string) (*SpellSessionView, error)
	SkipSpell(ctx context.Context, learnerID, sessionID uuid.UUID) (*SpellSessionView, error)
	RestartSpell(ctx context.Context, learnerID, sessionID uuid.UUID) (*SpellSessionView, error)
	Speak(ctx context.Context, learnerID, sessionID uuid.UUID) (game.SpeechCue, error)

	// Sweep は TTL を過ぎたセッションを破棄し、破棄した数を返します
	Sweep() int
}

// GameOptions はゲームの設定値と実行環境
type GameOptions struct {
	Match     game.MatchConfig
	Spell     game.SpellConfig
	Scoring   game.ScoringPolicy
	TTL       time.Duration
	Scheduler game.Scheduler
	Cues      game.CuePlayer
	NewRand   func() *rand.Rand
}

type gameSession struct {
	id        uuid.UUID
	learnerID uuid.UUID
	match     *game.MatchGame
	spell     *game.SpellGame

	mu         sync.Mutex
	lastAccess time.Time
	save       SaveView
}

func (s *gameSession) saveView() SaveView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save
}

func (s *gameSession) setSave(v SaveView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.save = v
}

type gameService struct {
	store  store.Store
	opts   GameOptions
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*gameSession
}

func NewGameService(st store.Store, opts GameOptions, logger *slog.Logger) GameService {
	if opts.Scheduler == nil {
		opts.Scheduler = game.NewScheduler()
	}
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand { return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) }
	}
	if opts.Scoring == (game.ScoringPolicy{}) {
		opts.Scoring = game.DefaultScoringPolicy()
	}
	opts.Spell.Scoring = opts.Scoring
	return &gameService{
		store:    st,
		opts:     opts,
		logger:   logger,
		sessions: make(map[uuid.UUID]*gameSession),
	}
}

func (s *gameService) env() game.Env {
	return game.Env{
		Scheduler: s.opts.Scheduler,
		Rand:      s.opts.NewRand(),
		Cues:      s.opts.Cues,
		Logger:    s.logger,
	}
}

func (s *gameService) register(sess *gameSession) {
	sess.lastAccess = s.opts.Scheduler.Now()
	sess.save = SaveView{Status: model.SaveStatusNone}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
}

// lookup は他の学習者のセッションを見つからない扱いにします
func (s *gameService) lookup(learnerID, sessionID uuid.UUID) (*gameSession, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok || sess.learnerID != learnerID {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "游戏会话不存在或已过期。", "id", model.ErrNotFound)
	}
	sess.mu.Lock()
	sess.lastAccess = s.opts.Scheduler.Now()
	sess.mu.Unlock()
	return sess, nil
}

func (s *gameService) lookupMatch(learnerID, sessionID uuid.UUID) (*gameSession, error) {
	sess, err := s.lookup(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.match == nil {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "游戏会话不存在或已过期。", "id", model.ErrNotFound)
	}
	return sess, nil
}

func (s *gameService) lookupSpell(learnerID, sessionID uuid.UUID) (*gameSession, error) {
	sess, err := s.lookup(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.spell == nil {
		return nil, model.NewAppError("SESSION_NOT_FOUND", "游戏会话不存在或已过期。", "id", model.ErrNotFound)
	}
	return sess, nil
}

// gameError はゲームのエラーをクライアント向けに変換します
func gameError(err error) error {
	switch {
	case errors.Is(err, model.ErrGameOver):
		return model.NewAppError("GAME_OVER", "游戏已经结束。", "", err)
	case errors.Is(err, model.ErrGameBusy):
		return model.NewAppError("GAME_BUSY", "请等待当前反馈结束。", "", err)
	case errors.Is(err, model.ErrNotFound):
		return model.NewAppError("CARD_NOT_FOUND", "卡片不存在。", "card_id", err)
	case errors.Is(err, model.ErrInvalidInput):
		return model.NewAppError("INVALID_WORDS", "单词列表无效。", "words", err)
	}
	return model.NewAppError("INTERNAL_SERVER_ERROR", "游戏处理失败。", "", err)
}

func (s *gameService) matchView(sess *gameSession) *MatchSessionView {
	return &MatchSessionView{SessionID: sess.id, Game: sess.match.Snapshot(), Save: sess.saveView()}
}

func (s *gameService) spellView(sess *gameSession) *SpellSessionView {
	return &SpellSessionView{SessionID: sess.id, Game: sess.spell.Snapshot(), Save: sess.saveView()}
}

func (s *gameService) StartMatch(ctx context.Context, learnerID uuid.UUID, words []model.Word, mode string) (*MatchSessionView, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	m, err := game.ParseMode(mode)
	if err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "模式必须是 visual 或 memory。", "mode", err)
	}
	g, err := game.NewMatchGame(words, m, s.opts.Match, s.env())
	if err != nil {
		logger.Warn("Failed to start match game", "error", err)
		return nil, gameError(err)
	}
	sess := &gameSession{id: uuid.New(), learnerID: learnerID, match: g}
	policy := s.opts.Scoring
	g.OnComplete(func(sum game.MatchSummary) {
		secs := int(sum.Elapsed / time.Second)
		eval := policy.EvaluateMatch(sum.Pairs, sum.Moves, float64(secs))
		s.saveRecord(sess, &model.LearningRecord{
			LearnerID:        learnerID,
			GameType:         model.GameTypeMatch,
			WordCount:        sum.Pairs,
			CorrectCount:     sum.Pairs,
			TimeSpentSeconds: secs,
			Score:            eval.Score,
			EvaluationText:   eval.Text(),
		}, nil)
	})
	s.register(sess)
	logger.Info("Match game started", "session_id", sess.id, "mode", m, "words", len(words))
	return s.matchView(sess), nil
}

func (s *gameService) GetMatch(ctx context.Context, learnerID, sessionID uuid.UUID) (*MatchSessionView, error) {
	sess, err := s.lookupMatch(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.matchView(sess), nil
}

func (s *gameService) ClickCard(ctx context.Context, learnerID, sessionID uuid.UUID, cardID string) (*MatchSessionView, error) {
	sess, err := s.lookupMatch(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.match.Click(cardID); err != nil {
		middleware.GetLogger(ctx).Debug("Card click rejected", "session_id", sessionID, "card_id", cardID, "error", err)
		return nil, gameError(err)
	}
	return s.matchView(sess), nil
}

func (s *gameService) ResetMatch(ctx context.Context, learnerID, sessionID uuid.UUID) (*MatchSessionView, error) {
	sess, err := s.lookupMatch(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.match.Reset()
	sess.setSave(SaveView{Status: model.SaveStatusNone})
	return s.matchView(sess), nil
}

func (s *gameService) ToggleMatchMode(ctx context.Context, learnerID, sessionID uuid.UUID) (*MatchSessionView, error) {
	sess, err := s.lookupMatch(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.match.ToggleMode()
	sess.setSave(SaveView{Status: model.SaveStatusNone})
	return s.matchView(sess), nil
}

func (s *gameService) StartSpell(ctx context.Context, learnerID uuid.UUID, words []model.Word) (*SpellSessionView, error) {
	logger := middleware.GetLogger(ctx).With("learner_id", learnerID)

	g, err := game.NewSpellGame(words, s.opts.Spell, s.env())
	if err != nil {
		logger.Warn("Failed to start spell game", "error", err)
		return nil, gameError(err)
	}
	sess := &gameSession{id: uuid.New(), learnerID: learnerID, spell: g}
	g.OnComplete(func(sum game.SpellSummary) {
		s.saveRecord(sess, &model.LearningRecord{
			LearnerID:        learnerID,
			GameType:         model.GameTypeSpell,
			WordCount:        sum.Total,
			CorrectCount:     sum.Correct,
			TimeSpentSeconds: sum.Elapsed,
			Score:            sum.Evaluation.Score,
			EvaluationText:   sum.Evaluation.Text(),
		}, sum.DifficultWords)
	})
	s.register(sess)
	logger.Info("Spell game started", "session_id", sess.id, "words", len(words))
	return s.spellView(sess), nil
}

func (s *gameService) GetSpell(ctx context.Context, learnerID, sessionID uuid.UUID) (*SpellSessionView, error) {
	sess, err := s.lookupSpell(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.spellView(sess), nil
}

func (s *gameService) SubmitSpell(ctx context.Context, learnerID, sessionID uuid.UUID, answer string) (*SpellSessionView, error) {
	sess, err := s.lookupSpell(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.spell.Submit(answer); err != nil {
		return nil, gameError(err)
	}
	return s.spellView(sess), nil
}

func (s *gameService) SkipSpell(ctx context.Context, learnerID, sessionID uuid.UUID) (*SpellSessionView, error) {
	sess, err := s.lookupSpell(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.spell.Skip(); err != nil {
		return nil, gameError(err)
	}
	return s.spellView(sess), nil
}

func (s *gameService) RestartSpell(ctx context.Context, learnerID, sessionID uuid.UUID) (*SpellSessionView, error) {
	sess, err := s.lookupSpell(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.spell.Restart()
	sess.setSave(SaveView{Status: model.SaveStatusNone})
	return s.spellView(sess), nil
}

func (s *gameService) Speak(ctx context.Context, learnerID, sessionID uuid.UUID) (game.SpeechCue, error) {
	sess, err := s.lookupSpell(learnerID, sessionID)
	if err != nil {
		return game.SpeechCue{}, err
	}
	cue, err := sess.spell.Speak()
	if err != nil {
		return game.SpeechCue{}, gameError(err)
	}
	return cue, nil
}

// saveRecord は完了コールバックから呼ばれます。失敗してもゲームの状態は変えず、保存状態に記録するだけです。
func (s *gameService) saveRecord(sess *gameSession, rec *model.LearningRecord, difficult []model.Word) {
	logger := s.logger.With("session_id", sess.id, "learner_id", sess.learnerID, "game_type", rec.GameType)
	if s.store == nil {
		sess.setSave(SaveView{Status: model.SaveStatusSkipped})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	ctx = middleware.WithLogger(ctx, logger)

	rec.RecordID = uuid.New()
	rec.Timestamp = s.opts.Scheduler.Now()
	if err := s.store.SaveSession(ctx, rec); err != nil {
		logger.Error("Failed to save learning record", "error", err)
		sess.setSave(SaveView{Status: model.SaveStatusFailed, Error: err.Error()})
		return
	}
	for _, w := range difficult {
		if _, err := s.store.UpsertDifficultWord(ctx, sess.learnerID, w, model.DifficultyHard); err != nil {
			logger.Warn("Failed to add difficult word to wordbook", "word", w.English, "error", err)
		}
	}
	sess.setSave(SaveView{Status: model.SaveStatusSaved, Record: rec})
	logger.Info("Learning record saved", "record_id", rec.RecordID, "score", rec.Score)
}

func (s *gameService) Sweep() int {
	if s.opts.TTL <= 0 {
		return 0
	}
	cutoff := s.opts.Scheduler.Now().Add(-s.opts.TTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := sess.lastAccess.Before(cutoff)
		sess.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Expired game sessions removed", "count", removed)
	}
	return removed
}

// RunSweeper は ctx が終わるまで interval ごとに Sweep を実行します
func RunSweeper(ctx context.Context, svc GameService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.Sweep()
		}
	}
}
