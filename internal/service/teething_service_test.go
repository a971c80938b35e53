package service

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webbaby/internal/models"
	"webbaby/internal/validation"
)

type fakeToothStore struct {
	nextID int64
	teeth  map[int64]models.Tooth
}

func newFakeToothStore() *fakeToothStore {
	return &fakeToothStore{teeth: make(map[int64]models.Tooth)}
}

func (f *fakeToothStore) Upsert(code string, appearedAt *models.Date) (*models.Tooth, error) {
	if t, _ := f.GetByCode(code); t != nil {
		t.AppearedAt = appearedAt
		f.teeth[t.ID] = *t
		return t, nil
	}
	f.nextID++
	t := models.Tooth{ID: f.nextID, ToothCode: code, AppearedAt: appearedAt}
	f.teeth[t.ID] = t
	return &t, nil
}

func (f *fakeToothStore) GetByID(id int64) (*models.Tooth, error) {
	t, ok := f.teeth[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeToothStore) GetByCode(code string) (*models.Tooth, error) {
	for _, t := range f.teeth {
		if t.ToothCode == code {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeToothStore) List() ([]models.Tooth, error) {
	out := []models.Tooth{}
	for _, t := range f.teeth {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ToothCode < out[j].ToothCode })
	return out, nil
}

func (f *fakeToothStore) Update(tooth *models.Tooth) error {
	f.teeth[tooth.ID] = *tooth
	return nil
}

func (f *fakeToothStore) Delete(id int64) (bool, error) {
	if _, ok := f.teeth[id]; !ok {
		return false, nil
	}
	delete(f.teeth, id)
	return true, nil
}

func TestTeethingService(t *testing.T) {
	s := NewTeethingService(newFakeToothStore())
	day := mustDate("2024-09-01")

	_, err := s.Upsert(ToothInput{})
	var verr validation.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "toothCode required", verr.Message)

	_, err = s.Upsert(ToothInput{ToothCode: "XX9"})
	assert.Error(t, err)

	lower, err := s.Upsert(ToothInput{ToothCode: "ll1", AppearedAt: &day})
	require.NoError(t, err)
	assert.Equal(t, "LL1", lower.ToothCode)

	again, err := s.Upsert(ToothInput{ToothCode: "LL1"})
	require.NoError(t, err)
	assert.Equal(t, lower.ID, again.ID)
	assert.Nil(t, again.AppearedAt)

	upper, err := s.Upsert(ToothInput{ToothCode: "UR1", AppearedAt: &day})
	require.NoError(t, err)

	_, err = s.Update(upper.ID, ToothInput{ToothCode: "LL1"})
	assert.ErrorIs(t, err, ErrConflict)

	moved, err := s.Update(upper.ID, ToothInput{ToothCode: "UL1", AppearedAt: &day})
	require.NoError(t, err)
	assert.Equal(t, "UL1", moved.ToothCode)

	cleared, err := s.Clear("ul1")
	require.NoError(t, err)
	assert.Nil(t, cleared.AppearedAt)

	_, err = s.Clear("LR5")
	assert.ErrorIs(t, err, ErrNotFound)

	teeth, err := s.List()
	require.NoError(t, err)
	require.Len(t, teeth, 2)
	assert.Equal(t, "LL1", teeth[0].ToothCode)

	require.NoError(t, s.Delete(moved.ID))
	assert.ErrorIs(t, s.Delete(moved.ID), ErrNotFound)
	_, err = s.Update(moved.ID, ToothInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}
