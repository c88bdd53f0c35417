// internal/handlers/router.go
package handlers

import (
	"github.com/go-chi/chi/v5"
)

// API は /api/v1 配下のハンドラ一式です
type API struct {
	Import   *ImportHandler
	Textbook *TextbookHandler
	Game     *GameHandler
	Learning *LearningHandler
}

// Routes は /api/v1 配下のルートを登録します。ミドルウェアは呼び出し側で設定します。
func (a *API) Routes(r chi.Router) {
	r.Route("/parse", func(r chi.Router) {
		r.Post("/line", a.Import.ParseLine)
		r.Post("/text", a.Import.ParseText)
		r.Post("/html", a.Import.ParseHTML)
	})

	r.Route("/imports", func(r chi.Router) {
		r.Post("/file", a.Import.ImportFile)
		r.Post("/manual", a.Import.ImportManual)
		r.Get("/random", a.Import.ImportRandom)
		r.Post("/web", a.Import.ImportWeb)
		r.Post("/ocr", a.Import.ImportOCR)
	})

	r.Route("/history", func(r chi.Router) {
		r.Get("/", a.Import.ListHistory)
		r.Get("/stats", a.Import.HistoryStats)
		r.Delete("/{history_id}", a.Import.DeleteHistory)
	})

	r.Route("/textbooks", func(r chi.Router) {
		r.Get("/", a.Textbook.ListTextbooks)
		r.Post("/validate", a.Textbook.Validate)
		r.Post("/parse", a.Textbook.Parse)
		r.Get("/{textbook_id}", a.Textbook.GetTextbook)
		r.Get("/{textbook_id}/words", a.Textbook.TextbookWords)
	})

	r.Route("/games", func(r chi.Router) {
		r.Route("/match", func(r chi.Router) {
			r.Post("/", a.Game.StartMatch)
			r.Get("/{session_id}", a.Game.GetMatch)
			r.Post("/{session_id}/click", a.Game.ClickCard)
			r.Post("/{session_id}/reset", a.Game.ResetMatch)
			r.Post("/{session_id}/mode", a.Game.ToggleMatchMode)
		})
		r.Route("/spell", func(r chi.Router) {
			r.Post("/", a.Game.StartSpell)
			r.Get("/{session_id}", a.Game.GetSpell)
			r.Post("/{session_id}/answer", a.Game.SubmitSpell)
			r.Post("/{session_id}/skip", a.Game.SkipSpell)
			r.Post("/{session_id}/restart", a.Game.RestartSpell)
			r.Post("/{session_id}/speak", a.Game.Speak)
		})
	})

	r.Get("/sessions", a.Learning.ListSessions)

	r.Route("/wordbook", func(r chi.Router) {
		r.Get("/", a.Learning.ListWordbook)
		r.Patch("/{word}", a.Learning.PatchWordbook)
		r.Delete("/{word}", a.Learning.DeleteWordbook)
	})

	r.Get("/health", a.Learning.Health)
}
