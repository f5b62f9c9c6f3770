package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetstore/adapters/memory"
	"sheetstore/domain/core"
	"sheetstore/domain/tabular"
	"sheetstore/ports"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// stepClock returns a clock that advances by step on every call.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(step)
		return now
	}
}

func fruitDataset() *tabular.Dataset {
	return tabular.NewDataset("Fruits.xlsx", []string{"Name", "Qty"}, [][]tabular.Cell{
		{tabular.StringCell("Apples"), tabular.NumberCell(3)},
		{tabular.StringCell("Bananas"), tabular.NumberCell(5)},
	})
}

func TestUpload_DerivedIDCreatesNewDocument(t *testing.T) {
	store := memory.New()
	svc := NewTableService(store)
	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	result, err := svc.Upload(context.Background(), fruitDataset(), "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, tabular.DeriveID("Fruits.xlsx", now), result.DocumentID)

	table, err := svc.Get(context.Background(), result.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, "Fruits.xlsx", table.FileName)
	assert.Equal(t, []string{"Name", "Qty"}, table.Headers)
	assert.Equal(t, [][]string{{"Apples", "3"}, {"Bananas", "5"}}, table.Rows)
	assert.Equal(t, 2, table.RowCount)
	assert.Equal(t, now, table.UploadedAt)
	assert.Equal(t, now, table.UpdatedAt)
}

func TestUpload_MergePreservesUploadedAt(t *testing.T) {
	store := memory.New()
	svc := NewTableService(store)
	first := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	svc.now = stepClock(first, time.Hour)

	_, err := svc.Upload(context.Background(), fruitDataset(), "fruit-slot")
	require.NoError(t, err)

	result, err := svc.Upload(context.Background(), fruitDataset(), "fruit-slot")
	require.NoError(t, err)
	assert.Equal(t, "fruit-slot", result.DocumentID)

	table, err := svc.Get(context.Background(), "fruit-slot")
	require.NoError(t, err)
	assert.Equal(t, first, table.UploadedAt, "uploadedAt must reflect the first persistence")
	assert.Equal(t, first.Add(time.Hour), table.UpdatedAt, "updatedAt must reflect the latest write")
}

func TestUpload_MergePreservesSiblingFields(t *testing.T) {
	store := memory.New()
	svc := NewTableService(store)
	svc.now = fixedClock(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))

	seeded := ports.Document{
		"fileName":   "old.csv",
		"annotation": "keep me",
		"uploadedAt": time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Set(context.Background(), "fruit-slot", seeded))

	_, err := svc.Upload(context.Background(), fruitDataset(), "fruit-slot")
	require.NoError(t, err)

	doc, err := store.Get(context.Background(), "fruit-slot")
	require.NoError(t, err)
	assert.Equal(t, "keep me", doc["annotation"], "merge must not delete unrelated sibling fields")
	assert.Equal(t, "Fruits.xlsx", doc["fileName"])
	assert.Equal(t, seeded["uploadedAt"], doc["uploadedAt"])
}

func TestGet_NotFound(t *testing.T) {
	svc := NewTableService(memory.New())
	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}

func TestList_OrderedByUploadTimeDescending(t *testing.T) {
	store := memory.New()
	svc := NewTableService(store)
	svc.now = stepClock(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC), time.Minute)

	for _, name := range []string{"first.csv", "second.csv", "third.csv"} {
		ds := tabular.NewDataset(name, []string{"v"}, [][]tabular.Cell{{tabular.StringCell("x")}})
		_, err := svc.Upload(context.Background(), ds, "")
		require.NoError(t, err)
	}

	summaries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "third.csv", summaries[0].FileName)
	assert.Equal(t, "second.csv", summaries[1].FileName)
	assert.Equal(t, "first.csv", summaries[2].FileName)
}

func TestDelete_AbsentIDSucceeds(t *testing.T) {
	svc := NewTableService(memory.New())
	assert.NoError(t, svc.Delete(context.Background(), "never-existed"))
}

func TestSearch(t *testing.T) {
	store := memory.New()
	svc := NewTableService(store)
	svc.now = stepClock(time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC), time.Minute)

	fruits, err := svc.Upload(context.Background(), fruitDataset(), "")
	require.NoError(t, err)

	veggies := tabular.NewDataset("Veggies.csv", []string{"Name"}, [][]tabular.Cell{
		{tabular.StringCell("Carrots")},
	})
	_, err = svc.Upload(context.Background(), veggies, "")
	require.NoError(t, err)

	t.Run("case-insensitive substring match", func(t *testing.T) {
		results, total, err := svc.Search(context.Background(), "banana")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, fruits.DocumentID, results[0].DocumentID)
		assert.Equal(t, [][]string{{"Bananas", "5"}}, results[0].MatchingRows)
		assert.Equal(t, 1, results[0].MatchCount)
		assert.Equal(t, 1, total)
	})

	t.Run("non-matching records omitted entirely", func(t *testing.T) {
		results, total, err := svc.Search(context.Background(), "apple")
		require.NoError(t, err)
		require.Len(t, results, 1, "veggie table has no match and must not appear")
		assert.Equal(t, fruits.DocumentID, results[0].DocumentID)
		assert.Equal(t, 1, total)
	})

	t.Run("match in any column counts the row once", func(t *testing.T) {
		results, total, err := svc.Search(context.Background(), "5")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 1, total)
	})

	t.Run("no matches yields empty results", func(t *testing.T) {
		results, total, err := svc.Search(context.Background(), "zucchini")
		require.NoError(t, err)
		assert.Empty(t, results)
		assert.Zero(t, total)
	})

	t.Run("blank term rejected", func(t *testing.T) {
		_, _, err := svc.Search(context.Background(), "  ")
		assert.ErrorIs(t, err, core.ErrMissingSearchTerm)
	})
}
