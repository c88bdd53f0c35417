package model

// StartMatchRequest はマッチゲーム開始リクエストDTO
type StartMatchRequest struct {
	Words []Word `json:"words" validate:"required,min=1,dive"`
	Mode  string `json:"mode" validate:"omitempty,oneof=visual memory"`
}

// StartSpellRequest はスペルゲーム開始リクエストDTO
type StartSpellRequest struct {
	Words []Word `json:"words" validate:"required,min=1,dive"`
}

// CardClickRequest はカードクリックのリクエストDTO
type CardClickRequest struct {
	CardID string `json:"card_id" validate:"required"`
}

// SpellAnswerRequest はスペル回答のリクエストDTO
type SpellAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// SaveStatus はゲーム完了時のセッション保存状態
type SaveStatus string

const (
	SaveStatusNone    SaveStatus = "none" // まだ完了していない
	SaveStatusSaved   SaveStatus = "saved"
	SaveStatusFailed  SaveStatus = "failed"
	SaveStatusSkipped SaveStatus = "skipped"
)
