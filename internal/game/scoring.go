// internal/game/scoring.go
package game

import "math"

// Band は評価の段階
type Band string

const (
	BandExcellent        Band = "excellent"
	BandGood             Band = "good"
	BandFair             Band = "fair"
	BandNeedsImprovement Band = "needs_improvement"
)

type bandStandard struct {
	band    Band
	min     int
	label   string
	message string
}

// 上から順に判定します
var bandStandards = []bandStandard{
	{BandExcellent, 90, "优秀", "记忆力超群，继续保持！"},
	{BandGood, 75, "良好", "掌握得不错，有待提高。"},
	{BandFair, 60, "一般", "需要多加练习。"},
	{BandNeedsImprovement, 0, "待加强", "建议重新复习。"},
}

// ScoringPolicy は正答率と1語あたりの所要時間から点数を出します。
//
//	score = round(correct/total*AccuracyWeight + clamp(TimeWeight - (secPerWord-Baseline)*Penalty, 0, TimeWeight))
type ScoringPolicy struct {
	AccuracyWeight         float64
	TimeWeight             float64
	BaselineSecondsPerWord float64
	PenaltyPerSecond       float64
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		AccuracyWeight:         70,
		TimeWeight:             30,
		BaselineSecondsPerWord: 10,
		PenaltyPerSecond:       2,
	}
}

// Evaluation は採点結果と評価文
type Evaluation struct {
	Score    int     `json:"score"`
	Accuracy float64 `json:"accuracy"` // 0〜100
	Band     Band    `json:"band"`
	Label    string  `json:"label"`
	Message  string  `json:"message"`
}

// Text は履歴に保存する評価文
func (e Evaluation) Text() string {
	return e.Label + " - " + e.Message
}

// Score は点数を返します。total が0なら0点。
func (p ScoringPolicy) Score(correct, total int, seconds float64) int {
	if total <= 0 {
		return 0
	}
	return p.combine(float64(correct)/float64(total), seconds/float64(total))
}

// combine は正答率 (0〜1) と1語あたりの秒数から点数を出します
func (p ScoringPolicy) combine(ratio, perWord float64) int {
	timeScore := p.TimeWeight - (perWord-p.BaselineSecondsPerWord)*p.PenaltyPerSecond
	timeScore = math.Max(0, math.Min(p.TimeWeight, timeScore))
	return int(math.Round(ratio*p.AccuracyWeight + timeScore))
}

// Evaluate は点数と段階をまとめて返します
func (p ScoringPolicy) Evaluate(correct, total int, seconds float64) Evaluation {
	score := p.Score(correct, total, seconds)
	ratio := 0.0
	if total > 0 {
		ratio = float64(correct) / float64(total)
	}
	return evaluation(score, ratio)
}

// EvaluateMatch はマッチゲーム用です。正確さは ペア数/手数、時間は1ペア (1語) あたりで計ります。
func (p ScoringPolicy) EvaluateMatch(pairs, moves int, seconds float64) Evaluation {
	if pairs <= 0 || moves <= 0 {
		return evaluation(0, 0)
	}
	ratio := math.Min(1, float64(pairs)/float64(moves))
	return evaluation(p.combine(ratio, seconds/float64(pairs)), ratio)
}

func evaluation(score int, ratio float64) Evaluation {
	b := bandFor(score)
	return Evaluation{
		Score:    score,
		Accuracy: math.Round(ratio*1000) / 10,
		Band:     b.band,
		Label:    b.label,
		Message:  b.message,
	}
}

func bandFor(score int) bandStandard {
	for _, b := range bandStandards {
		if score >= b.min {
			return b
		}
	}
	return bandStandards[len(bandStandards)-1]
}
