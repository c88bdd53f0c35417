// internal/game/scoring_test.go
package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoringPolicy_Evaluate(t *testing.T) {
	p := DefaultScoringPolicy()

	tests := []struct {
		name      string
		correct   int
		total     int
		seconds   float64
		wantScore int
		wantBand  Band
	}{
		{name: "正常系: 8/10 を80秒 (時間点は上限30)", correct: 8, total: 10, seconds: 80, wantScore: 86, wantBand: BandGood},
		{name: "正常系: 9/10 を50秒", correct: 9, total: 10, seconds: 50, wantScore: 93, wantBand: BandExcellent},
		{name: "正常系: 全問正解でも遅いと70点", correct: 10, total: 10, seconds: 300, wantScore: 70, wantBand: BandFair},
		{name: "正常系: 速くても正答率0なら時間点のみ", correct: 0, total: 10, seconds: 10, wantScore: 30, wantBand: BandNeedsImprovement},
		{name: "正常系: 基準ちょうど", correct: 5, total: 10, seconds: 100, wantScore: 65, wantBand: BandFair},
		{name: "境界値: 単語数0", correct: 0, total: 0, seconds: 10, wantScore: 0, wantBand: BandNeedsImprovement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := p.Evaluate(tt.correct, tt.total, tt.seconds)
			assert.Equal(t, tt.wantScore, ev.Score)
			assert.Equal(t, tt.wantBand, ev.Band)
			assert.NotEmpty(t, ev.Message)
		})
	}
}

func TestScoringPolicy_Bands(t *testing.T) {
	assert.Equal(t, BandExcellent, bandFor(90).band)
	assert.Equal(t, BandGood, bandFor(89).band)
	assert.Equal(t, BandGood, bandFor(75).band)
	assert.Equal(t, BandFair, bandFor(60).band)
	assert.Equal(t, BandNeedsImprovement, bandFor(59).band)

	ev := DefaultScoringPolicy().Evaluate(8, 10, 80)
	assert.Equal(t, 80.0, ev.Accuracy)
	assert.Equal(t, "良好 - 掌握得不错，有待提高。", ev.Text())
}

func TestScoringPolicy_Custom(t *testing.T) {
	p := ScoringPolicy{AccuracyWeight: 60, TimeWeight: 40, BaselineSecondsPerWord: 5, PenaltyPerSecond: 4}
	// 60 + (40 - (10-5)*4) = 80
	assert.Equal(t, 80, p.Score(10, 10, 100))
}

func TestScoringPolicy_EvaluateMatch(t *testing.T) {
	p := DefaultScoringPolicy()

	tests := []struct {
		name         string
		pairs        int
		moves        int
		seconds      float64
		wantScore    int
		wantAccuracy float64
	}{
		{name: "正常系: ミスなしで1ペア10秒", pairs: 8, moves: 8, seconds: 80, wantScore: 100, wantAccuracy: 100},
		// 時間は手数ではなくペア数で割る: 160/8=20秒 → 時間点10
		{name: "正常系: 手数が倍なら正確さ半分", pairs: 8, moves: 16, seconds: 160, wantScore: 45, wantAccuracy: 50},
		{name: "正常系: 遅いと時間点0", pairs: 2, moves: 3, seconds: 62, wantScore: 47, wantAccuracy: 66.7},
		{name: "境界値: ペア数0", pairs: 0, moves: 0, seconds: 10, wantScore: 0, wantAccuracy: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := p.EvaluateMatch(tt.pairs, tt.moves, tt.seconds)
			assert.Equal(t, tt.wantScore, ev.Score)
			assert.Equal(t, tt.wantAccuracy, ev.Accuracy)
			assert.NotEmpty(t, ev.Label)
		})
	}
}
