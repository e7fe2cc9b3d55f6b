package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmasim/pharmasim/sim"
	"github.com/pharmasim/pharmasim/sim/internal/testutil"
)

const drugsHeader = "name;base_price;base_markup;standard_quantity;shelf_life\n"
const recurringHeader = "drugs;period;client;address;phone;card_id\n"

func TestLoadDrugsCSV_Valid(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "drugs.csv", drugsHeader+
		"aspirin;20;1.5;120;60\n"+
		"insulin; 400 ;1.1;30;20\n")

	specs, err := LoadDrugsCSV(path)

	require.NoError(t, err)
	assert.Equal(t, []sim.DrugSpec{
		{Name: "aspirin", BasePrice: 20, BaseMarkup: 1.5, StandardQuantity: 120, ShelfLifeDays: 60},
		{Name: "insulin", BasePrice: 400, BaseMarkup: 1.1, StandardQuantity: 30, ShelfLifeDays: 20},
	}, specs)
}

func TestLoadDrugsCSV_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty file", ""},
		{"non-numeric price", drugsHeader + "a;ten;1.5;1;1\n"},
		{"fractional price", drugsHeader + "a;10.5;1.5;1;1\n"},
		{"non-numeric markup", drugsHeader + "a;10;x;1;1\n"},
		{"zero price", drugsHeader + "a;0;1.5;1;1\n"},
		{"negative markup", drugsHeader + "a;10;-1;1;1\n"},
		{"negative quantity", drugsHeader + "a;10;1.5;-1;1\n"},
		{"negative shelf life", drugsHeader + "a;10;1.5;1;-1\n"},
		{"missing column", drugsHeader + "a;10;1.5;1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "drugs.csv", tt.body)
			_, err := LoadDrugsCSV(path)
			assert.ErrorIs(t, err, ErrCatalogLoad)
		})
	}
}

func TestLoadDrugsCSV_MissingFile(t *testing.T) {
	_, err := LoadDrugsCSV(t.TempDir() + "/nope.csv")
	assert.ErrorIs(t, err, ErrCatalogLoad)
}

func TestLoadDrugsCSV_ErrorNamesLine(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "drugs.csv", drugsHeader+"a;1;1;1;1\nb;x;1;1;1\n")
	_, err := LoadDrugsCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadRecurringCSV_Valid(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "recurring.csv", recurringHeader+
		"aspirin,2.insulin,1;7;Ann Lee;1 Main St;555-0101;4821\n"+
		"vitamin_c,10;3;Bo;2 Side St;555-0102;\n")

	specs, err := LoadRecurringCSV(path)

	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, sim.RecurringSpec{
		Drugs:    map[string]int{"aspirin": 2, "insulin": 1},
		Period:   7,
		Customer: "Ann Lee",
		Address:  "1 Main St",
		Phone:    "555-0101",
		CardID:   "4821",
	}, specs[0])
	assert.Empty(t, specs[1].CardID)
}

func TestLoadRecurringCSV_Malformed(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"no pair separator", "aspirin;7;A;B;C;\n"},
		{"non-numeric quantity", "aspirin,two;7;A;B;C;\n"},
		{"zero quantity", "aspirin,0;7;A;B;C;\n"},
		{"non-numeric period", "aspirin,1;weekly;A;B;C;\n"},
		{"missing column", "aspirin,1;7;A;B\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "recurring.csv", recurringHeader+tt.row)
			_, err := LoadRecurringCSV(path)
			assert.ErrorIs(t, err, ErrCatalogLoad)
		})
	}
}

func TestLoadYAML_Valid(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "book.yaml", `
drugs:
  - name: aspirin
    base_price: 20
    base_markup: 1.5
    standard_quantity: 120
    shelf_life_days: 60
recurring:
  - drugs: {aspirin: 3}
    period: 5
    customer: Ann
`)

	b, err := LoadYAML(path)

	require.NoError(t, err)
	require.Len(t, b.Drugs, 1)
	assert.Equal(t, int64(20), b.Drugs[0].BasePrice)
	require.Len(t, b.Recurring, 1)
	assert.Equal(t, map[string]int{"aspirin": 3}, b.Recurring[0].Drugs)
}

func TestLoadYAML_Rejects(t *testing.T) {
	drug := "drugs:\n  - {name: a, base_price: 1, base_markup: 1, standard_quantity: 1, shelf_life_days: 1}\n"
	tests := []struct {
		name string
		body string
	}{
		{"unknown field", drug + "extra: true\n"},
		{"misspelled drug field", "drugs:\n  - {name: a, baseprice: 1, base_markup: 1}\n"},
		{"no drugs", "recurring: []\n"},
		{"duplicate drug", drug + "  - {name: a, base_price: 1, base_markup: 1, standard_quantity: 1, shelf_life_days: 1}\n"},
		{"recurring unknown drug", drug + "recurring:\n  - {drugs: {b: 1}, period: 1}\n"},
		{"recurring zero period", drug + "recurring:\n  - {drugs: {a: 1}, period: 0}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "book.yaml", tt.body)
			_, err := LoadYAML(path)
			assert.ErrorIs(t, err, ErrCatalogLoad)
		})
	}
}

func TestLoad_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := testutil.WriteFile(t, dir, "drugs.csv", drugsHeader+"a;1;1;1;1\n")
	yamlPath := testutil.WriteFile(t, dir, "drugs.YML",
		"drugs:\n  - {name: b, base_price: 2, base_markup: 1, standard_quantity: 1, shelf_life_days: 1}\n")

	fromCSV, err := Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "a", fromCSV.Drugs[0].Name)

	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "b", fromYAML.Drugs[0].Name)
}

func TestLoad_Testdata(t *testing.T) {
	drugs, err := LoadDrugsCSV(testutil.TestdataPath(t, "drugs.csv"))
	require.NoError(t, err)
	recurring, err := LoadRecurringCSV(testutil.TestdataPath(t, "recurring.csv"))
	require.NoError(t, err)

	b := &Book{Drugs: drugs, Recurring: recurring}
	assert.NoError(t, b.Validate())

	fromYAML, err := LoadYAML(testutil.TestdataPath(t, "catalog.yaml"))
	require.NoError(t, err)
	assert.Equal(t, drugs, fromYAML.Drugs)
}
