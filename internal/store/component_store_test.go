package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"crafting-catalogue/internal/catalog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func seed(t *testing.T, st *Store, recs ...catalog.Component) []int64 {
	t.Helper()

	ids := make([]int64, 0, len(recs))
	for _, rec := range recs {
		rec.Normalize()
		id, err := st.Create(context.Background(), rec)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// Opening a file path must create the parent directory and actually apply
// the connection pragmas, which use modernc's _pragma DSN form.
func TestOpen_FilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "catalogue.db")

	st, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	var mode string
	require.NoError(t, st.db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	require.Equal(t, "wal", strings.ToLower(mode))

	var timeout int
	require.NoError(t, st.db.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout))
	require.Equal(t, 5000, timeout)

	id, err := st.Create(context.Background(), catalog.Component{Name: "Bolt", Unit: "pieces"})
	require.NoError(t, err)
	got, err := st.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Bolt", got.Name)
}

func TestCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	in := catalog.Component{
		Name:        "Bolt M4",
		Category:    "Fasteners",
		Description: "Stainless steel",
		Quantity:    250,
		Unit:        "pieces",
		CostPerUnit: decimal.RequireFromString("0.12"),
		Supplier:    "Acme Hardware",
		Location:    "Bin A3",
		Notes:       "metric thread",
	}

	id, err := st.Create(ctx, in)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := st.Get(ctx, id)
	require.NoError(t, err)

	require.Equal(t, id, got.ID)
	require.Equal(t, in.Name, got.Name)
	require.Equal(t, in.Category, got.Category)
	require.Equal(t, in.Description, got.Description)
	require.Equal(t, in.Quantity, got.Quantity)
	require.Equal(t, in.Unit, got.Unit)
	require.True(t, in.CostPerUnit.Equal(got.CostPerUnit))
	require.Equal(t, in.Supplier, got.Supplier)
	require.Equal(t, in.Location, got.Location)
	require.Equal(t, in.Notes, got.Notes)
	require.False(t, got.CreatedAt.IsZero())
	require.False(t, got.UpdatedAt.IsZero())
}

func TestGet_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(context.Background(), 12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_AffectsOnlyTarget(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ids := seed(t, st,
		catalog.Component{Name: "Bolt", Quantity: 10},
		catalog.Component{Name: "Screw", Quantity: 20},
	)

	updated := catalog.Component{Name: "Bolt M4", Quantity: 15, Unit: "pieces"}
	require.NoError(t, st.Update(ctx, ids[0], updated))

	got, err := st.Get(ctx, ids[0])
	require.NoError(t, err)
	require.Equal(t, "Bolt M4", got.Name)
	require.Equal(t, int64(15), got.Quantity)

	other, err := st.Get(ctx, ids[1])
	require.NoError(t, err)
	require.Equal(t, "Screw", other.Name)
	require.Equal(t, int64(20), other.Quantity)
}

func TestUpdate_NotFound(t *testing.T) {
	st := newTestStore(t)

	err := st.Update(context.Background(), 999, catalog.Component{Name: "X"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ids := seed(t, st,
		catalog.Component{Name: "Bolt"},
		catalog.Component{Name: "Screw"},
	)

	require.NoError(t, st.Delete(ctx, ids[0]))

	_, err := st.Get(ctx, ids[0])
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again reports not found and leaves the rest untouched.
	require.ErrorIs(t, st.Delete(ctx, ids[0]), ErrNotFound)

	recs, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Screw", recs[0].Name)
}

func TestList_OrderedByName(t *testing.T) {
	st := newTestStore(t)

	seed(t, st,
		catalog.Component{Name: "Washer"},
		catalog.Component{Name: "Bolt"},
		catalog.Component{Name: "Screw"},
	)

	recs, err := st.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "Bolt", recs[0].Name)
	require.Equal(t, "Screw", recs[1].Name)
	require.Equal(t, "Washer", recs[2].Name)
}

func TestSearch(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seed(t, st,
		catalog.Component{Name: "Bolt M4", Category: "Fasteners"},
		catalog.Component{Name: "Screw", Category: "Fasteners", Description: "like a bolt with a point"},
		catalog.Component{Name: "Red Yarn", Category: "Textiles"},
	)

	// Case-insensitive substring over name, category, and description.
	recs, err := st.Search(ctx, "bolt", "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Bolt M4", recs[0].Name)
	require.Equal(t, "Screw", recs[1].Name)

	// Category filter is exact.
	recs, err = st.Search(ctx, "", "Textiles")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Red Yarn", recs[0].Name)

	// Combined filters intersect.
	recs, err = st.Search(ctx, "bolt", "Textiles")
	require.NoError(t, err)
	require.Empty(t, recs)

	// No filters is the full list.
	recs, err = st.Search(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, recs, 3)
}

func TestListByCategory(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	seed(t, st,
		catalog.Component{Name: "Washer", Category: "Fasteners"},
		catalog.Component{Name: "Bolt", Category: "Fasteners"},
		catalog.Component{Name: "Yarn", Category: "Textiles"},
	)

	recs, err := st.ListByCategory(ctx, "Fasteners")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Bolt", recs[0].Name)
	require.Equal(t, "Washer", recs[1].Name)

	// Exact match only, no substring behavior.
	recs, err = st.ListByCategory(ctx, "Fasten")
	require.NoError(t, err)
	require.Empty(t, recs)
}

func TestCategories(t *testing.T) {
	st := newTestStore(t)

	seed(t, st,
		catalog.Component{Name: "Bolt", Category: "Fasteners"},
		catalog.Component{Name: "Screw", Category: "Fasteners"},
		catalog.Component{Name: "Yarn", Category: "Textiles"},
		catalog.Component{Name: "Mystery Part"},
	)

	categories, err := st.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Fasteners", "Textiles"}, categories)
}

func TestStats(t *testing.T) {
	st := newTestStore(t)

	seed(t, st,
		catalog.Component{Name: "Bolt", Category: "Fasteners", Quantity: 10, CostPerUnit: decimal.RequireFromString("0.25")},
		catalog.Component{Name: "Yarn", Category: "Textiles", Quantity: 3, CostPerUnit: decimal.RequireFromString("4.50")},
	)

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(2), stats.Components)
	require.Equal(t, int64(13), stats.TotalQuantity)
	require.Equal(t, int64(2), stats.Categories)
	// 10*0.25 + 3*4.50 = 16.00, exactly.
	require.True(t, stats.TotalValue.Equal(decimal.RequireFromString("16")),
		"TotalValue = %s", stats.TotalValue)
}

func TestStats_Empty(t *testing.T) {
	st := newTestStore(t)

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)

	require.Zero(t, stats.Components)
	require.Zero(t, stats.TotalQuantity)
	require.Zero(t, stats.Categories)
	require.True(t, stats.TotalValue.IsZero())
}

func TestSettings_DefaultAndSave(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	settings, err := st.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, DefaultTitle, settings.Title)

	require.NoError(t, st.SaveSettings(ctx, Settings{Title: "Workshop Stock"}))

	settings, err = st.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, "Workshop Stock", settings.Title)
	require.False(t, settings.UpdatedAt.IsZero())

	// Saving again overwrites the single row.
	require.NoError(t, st.SaveSettings(ctx, Settings{Title: "Bead Inventory"}))

	settings, err = st.Settings(ctx)
	require.NoError(t, err)
	require.Equal(t, "Bead Inventory", settings.Title)
}
