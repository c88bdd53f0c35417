package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go_vocab_game/internal/catalog"
	"go_vocab_game/internal/model"
	"go_vocab_game/internal/store"
	"go_vocab_game/internal/store/mocks"
)

const sampleTextbook = `My English Book
Unit 1 Animals
Lesson 1 Pets
cat - 猫
dog - 狗
Unit 2 Colors
red - 红色
`

func newTestTextbookService(t *testing.T, st store.Store) TextbookService {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return NewTextbookService(st, cat)
}

func TestTextbookService_ParseAndLookup(t *testing.T) {
	st := store.NewMemoryStore(fixedClock)
	svc := newTestTextbookService(t, st)
	learner := uuid.New()

	res, err := svc.Parse(ctx, learner, sampleTextbook, true)
	require.NoError(t, err)
	require.True(t, res.Success)
	id := res.Textbook.Info.ID
	assert.Equal(t, "My English Book", res.Textbook.Info.Name)

	infos, err := svc.ListTextbooks(ctx, learner)
	require.NoError(t, err)
	require.Len(t, infos, 3, "組み込み2冊 + 取り込み1冊")
	assert.Equal(t, id, infos[2].ID)

	tests := []struct {
		name      string
		textbook  string
		unit      string
		lesson    string
		wantCount int
		wantErr   error
	}{
		{name: "正常系: 取り込んだ教材全体", textbook: id, wantCount: 3},
		{name: "正常系: Unit指定", textbook: id, unit: "unit-2", wantCount: 1},
		{name: "正常系: Lesson指定", textbook: id, unit: "unit-1", lesson: "lesson-1-1", wantCount: 2},
		{name: "正常系: 組み込み教材", textbook: "beijing-grade3-vol1", unit: "unit1", wantCount: 10},
		{name: "異常系: 存在しない教材", textbook: "nope", wantErr: model.ErrNotFound},
		{name: "異常系: 存在しないUnit", textbook: id, unit: "unit-9", wantErr: model.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := svc.TextbookWords(ctx, learner, tt.textbook, tt.unit, tt.lesson)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, words, tt.wantCount)
		})
	}

	_, err = svc.GetTextbook(ctx, uuid.New(), id)
	assert.ErrorIs(t, err, model.ErrNotFound, "他の学習者からは見えない")
}

func TestTextbookService_ParseWithoutStructure(t *testing.T) {
	st := new(mocks.Store)
	svc := newTestTextbookService(t, st)

	res, err := svc.Parse(ctx, uuid.Nil, "apple - 苹果", true)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, model.ErrNoChapterStructure.Error(), res.Error)
	assert.NotEmpty(t, res.Suggestions)
	st.AssertNotCalled(t, "SaveTextbook", mock.Anything, mock.Anything, mock.Anything)
}

func TestTextbookService_ParseSaveFailure(t *testing.T) {
	st := new(mocks.Store)
	st.On("SaveTextbook", mock.Anything, uuid.Nil, mock.AnythingOfType("*model.TextbookData")).Return(errors.New("db down")).Once()
	svc := newTestTextbookService(t, st)

	_, err := svc.Parse(ctx, uuid.Nil, sampleTextbook, true)
	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Code)
	st.AssertExpectations(t)
}

func TestTextbookService_Validate(t *testing.T) {
	svc := newTestTextbookService(t, store.NewMemoryStore(fixedClock))
	assert.True(t, svc.Validate(sampleTextbook).IsValid)
	assert.False(t, svc.Validate("hello").IsValid)
}
