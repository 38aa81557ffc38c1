package core

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"crafting-catalogue/internal/catalog"
	"crafting-catalogue/internal/report"
	"crafting-catalogue/internal/spreadsheet"
	"crafting-catalogue/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st)
}

func TestCreateComponent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateComponent(ctx, catalog.Component{
		Name:     "  Bolt M4  ",
		Quantity: 10,
	})
	require.NoError(t, err)

	require.Positive(t, created.ID)
	require.Equal(t, "Bolt M4", created.Name, "name should be trimmed")
	require.Equal(t, catalog.DefaultUnit, created.Unit)
	require.False(t, created.CreatedAt.IsZero())
}

func TestCreateComponent_Invalid(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateComponent(context.Background(), catalog.Component{Name: "   "})
	var verr catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "name", verr.Field)

	recs, err := svc.ListComponents(context.Background(), "", "")
	require.NoError(t, err)
	require.Empty(t, recs, "rejected component must not be stored")
}

// A category filter with no search text lists the category directly; adding
// search text narrows within it.
func TestListComponents_CategoryOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, c := range []catalog.Component{
		{Name: "Washer", Category: "Fasteners"},
		{Name: "Bolt", Category: "Fasteners"},
		{Name: "Yarn", Category: "Textiles"},
	} {
		_, err := svc.CreateComponent(ctx, c)
		require.NoError(t, err)
	}

	recs, err := svc.ListComponents(ctx, "", "Fasteners")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "Bolt", recs[0].Name)
	require.Equal(t, "Washer", recs[1].Name)

	recs, err = svc.ListComponents(ctx, "wash", "Fasteners")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, "Washer", recs[0].Name)
}

func TestUpdateComponent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateComponent(ctx, catalog.Component{Name: "Bolt"})
	require.NoError(t, err)

	updated, err := svc.UpdateComponent(ctx, created.ID, catalog.Component{
		Name:     "Bolt M4",
		Quantity: 99,
	})
	require.NoError(t, err)
	require.Equal(t, "Bolt M4", updated.Name)
	require.Equal(t, int64(99), updated.Quantity)
}

func TestUpdateComponent_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateComponent(context.Background(), 999, catalog.Component{Name: "X"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteComponent_NotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteComponent(context.Background(), 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestImportFile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	data := strings.Join([]string{
		"Component Name,Category,Quantity,Cost per Unit",
		"Bolt M4,Fasteners,250,$0.12",
		",Fasteners,5,0.10",
		"Red Yarn,Textiles,3,4.50",
	}, "\n")

	summary, err := svc.ImportFile(ctx, "stock.csv", strings.NewReader(data))
	require.NoError(t, err)

	require.NotEmpty(t, summary.ImportID)
	require.Equal(t, "stock.csv", summary.FileName)
	require.Equal(t, 2, summary.Imported)
	require.Equal(t, 1, summary.Skipped)
	require.Len(t, summary.Rows, 1)

	recs, err := svc.ListComponents(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

// Importing the same file twice appends; rows are never deduplicated.
func TestImportFile_Append(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	data := "Component Name,Quantity\nBolt,10\n"

	_, err := svc.ImportFile(ctx, "stock.csv", strings.NewReader(data))
	require.NoError(t, err)
	_, err = svc.ImportFile(ctx, "stock.csv", strings.NewReader(data))
	require.NoError(t, err)

	recs, err := svc.ListComponents(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestImportFile_BadExtension(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ImportFile(context.Background(), "stock.pdf", strings.NewReader("x"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported file type")
}

func TestExportComponents(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateComponent(ctx, catalog.Component{
		Name:        "Bolt M4",
		Category:    "Fasteners",
		Quantity:    250,
		CostPerUnit: decimal.RequireFromString("0.12"),
	})
	require.NoError(t, err)
	_, err = svc.CreateComponent(ctx, catalog.Component{Name: "Red Yarn", Category: "Textiles"})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := svc.ExportComponents(ctx, &buf, spreadsheet.FormatCSV, "", "")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Contains(t, buf.String(), "Bolt M4")

	// The category filter narrows the export the same way it narrows the
	// table view.
	buf.Reset()
	n, err = svc.ExportComponents(ctx, &buf, spreadsheet.FormatCSV, "", "Textiles")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.NotContains(t, buf.String(), "Bolt M4")
}

// A full cycle: import a file, export the catalogue, re-import the export.
func TestImportExportRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	data := strings.Join([]string{
		"Component Name,Category,Quantity,Unit,Cost per Unit",
		"Bolt M4,Fasteners,250,pieces,0.12",
		"Red Yarn,Textiles,3,skeins,4.50",
	}, "\n")

	_, err := svc.ImportFile(ctx, "stock.csv", strings.NewReader(data))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = svc.ExportComponents(ctx, &buf, spreadsheet.FormatCSV, "", "")
	require.NoError(t, err)

	summary, err := svc.ImportFile(ctx, "export.csv", &buf)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Imported)
	require.Zero(t, summary.Skipped)

	recs, err := svc.ListComponents(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, recs, 4)
}

func TestGenerateReport(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateComponent(ctx, catalog.Component{
		Name:        "Bolt M4",
		Category:    "Fasteners",
		Quantity:    250,
		CostPerUnit: decimal.RequireFromString("0.12"),
	})
	require.NoError(t, err)

	for _, kind := range []report.Kind{report.KindCatalogue, report.KindDetails, report.KindCategories} {
		var buf bytes.Buffer
		require.NoError(t, svc.GenerateReport(ctx, &buf, kind, "", ""))
		require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "kind %s", kind)
	}
}

func TestSaveSettings_BlankTitleFallsBack(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	saved, err := svc.SaveSettings(ctx, store.Settings{Title: ""})
	require.NoError(t, err)
	require.Equal(t, store.DefaultTitle, saved.Title)

	saved, err = svc.SaveSettings(ctx, store.Settings{Title: "Workshop Stock"})
	require.NoError(t, err)
	require.Equal(t, "Workshop Stock", saved.Title)
}
