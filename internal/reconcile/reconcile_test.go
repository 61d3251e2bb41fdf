package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfields/internal/model"
)

func fieldIDs(fields []model.PlacedField) []string {
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.ID)
	}
	return ids
}

func TestMerge(t *testing.T) {
	t.Run("untouched fields survive, moved field wins by id, new field appended", func(t *testing.T) {
		content := []model.DocumentPage{
			{Page: 1, ImageURL: "https://img/1.png", Components: []model.PlacedField{
				{ID: "signature-a", Kind: "signature", Page: 1, X: 10, Y: 10},
				{ID: "text-b", Kind: "text", Page: 1, X: 20, Y: 20},
			}},
		}
		// Session holds A at a new position plus a freshly dropped C.
		live := []model.PlacedField{
			{ID: "signature-a", Kind: "signature", Page: 1, X: 150, Y: 250},
			{ID: "checkbox-c", Kind: "checkbox", Page: 1, X: 30, Y: 30},
		}

		merged := Merge(content, live)
		require.Len(t, merged, 1)
		assert.ElementsMatch(t, []string{"text-b", "signature-a", "checkbox-c"}, fieldIDs(merged[0].Components))

		for _, c := range merged[0].Components {
			switch c.ID {
			case "signature-a":
				assert.Equal(t, 150.0, c.X)
				assert.Equal(t, 250.0, c.Y)
			case "text-b":
				assert.Equal(t, 20.0, c.X)
			}
		}
	})

	t.Run("field on a page absent from content creates a placeholder page", func(t *testing.T) {
		content := []model.DocumentPage{{Page: 1, ImageURL: "https://img/1.png"}}
		live := []model.PlacedField{{ID: "text-x", Kind: "text", Page: 3, X: 1, Y: 2}}

		merged := Merge(content, live)
		require.Len(t, merged, 2)
		assert.Equal(t, 1, merged[0].Page)
		assert.Equal(t, 3, merged[1].Page)
		assert.Empty(t, merged[1].ImageURL)
		assert.Equal(t, []string{"text-x"}, fieldIDs(merged[1].Components))
	})

	t.Run("input content is not mutated", func(t *testing.T) {
		content := []model.DocumentPage{
			{Page: 1, Components: []model.PlacedField{
				{ID: "text-b", Kind: "text", Page: 1, X: 20, Y: 20},
			}},
		}
		Merge(content, []model.PlacedField{
			{ID: "text-b", Kind: "text", Page: 1, X: 99, Y: 99},
		})
		assert.Equal(t, 20.0, content[0].Components[0].X)
	})

	t.Run("page order preserved with empty live set", func(t *testing.T) {
		content := []model.DocumentPage{{Page: 2}, {Page: 1}}
		merged := Merge(content, nil)
		require.Len(t, merged, 2)
		assert.Equal(t, 2, merged[0].Page)
		assert.Equal(t, 1, merged[1].Page)
	})
}

func TestMergeContent(t *testing.T) {
	existing := []model.DocumentPage{
		{Page: 1, ImageURL: "https://img/1.png", ImageKey: "pages/d/1.png", Components: []model.PlacedField{
			{ID: "signature-a", Kind: "signature", Page: 1, X: 10, Y: 10},
			{ID: "text-b", Kind: "text", Page: 1, X: 20, Y: 20},
		}},
		{Page: 2, ImageURL: "https://img/2.png", Components: []model.PlacedField{
			{ID: "checkbox-z", Kind: "checkbox", Page: 2},
		}},
	}

	t.Run("carried page is authoritative, absent page preserved", func(t *testing.T) {
		incoming := []model.DocumentPage{
			{Page: 1, Components: []model.PlacedField{
				{ID: "signature-a", Kind: "signature", Page: 1, X: 50, Y: 60},
				// text-b deleted in the session: it must not resurrect.
			}},
		}

		merged := MergeContent(existing, incoming)
		require.Len(t, merged, 2)
		assert.Equal(t, []string{"signature-a"}, fieldIDs(merged[0].Components))
		assert.Equal(t, 50.0, merged[0].Components[0].X)
		// Payload carried no image url; the stored one stays.
		assert.Equal(t, "https://img/1.png", merged[0].ImageURL)
		assert.Equal(t, "pages/d/1.png", merged[0].ImageKey)
		// Page 2 untouched.
		assert.Equal(t, []string{"checkbox-z"}, fieldIDs(merged[1].Components))
	})

	t.Run("nil payload leaves content alone", func(t *testing.T) {
		assert.Equal(t, existing, MergeContent(existing, nil))
	})

	t.Run("unknown incoming page appended", func(t *testing.T) {
		incoming := []model.DocumentPage{
			{Page: 5, ImageURL: "https://img/5.png"},
		}
		merged := MergeContent(existing, incoming)
		require.Len(t, merged, 3)
		assert.Equal(t, 5, merged[2].Page)
	})
}
