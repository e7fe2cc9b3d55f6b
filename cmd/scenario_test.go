package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmasim/pharmasim/sim"
	"github.com/pharmasim/pharmasim/sim/catalog"
)

const testdataDir = "../testdata"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultScenario_IsValid(t *testing.T) {
	sc := defaultScenario()
	assert.NoError(t, sc.Config.Validate())
	assert.NoError(t, sc.Policy.Validate())
}

func TestLoadScenario_Testdata(t *testing.T) {
	sc, err := loadScenario(filepath.Join(testdataDir, "scenario.yaml"))

	require.NoError(t, err)
	assert.Equal(t, int64(7), sc.Seed)
	assert.Equal(t, 90, sc.Config.DayCount)
	assert.Equal(t, 15, sc.Config.MinRestockQuantity)
	// catalog paths are relative to the scenario file
	assert.Equal(t, filepath.Join(testdataDir, "drugs.csv"), sc.DrugsFile)
	assert.Equal(t, filepath.Join(testdataDir, "recurring.csv"), sc.RecurringFile)
	// a partial policy keeps the other defaults
	assert.Equal(t, 20, sc.Policy.NearExpiryDays)
	assert.Equal(t, sim.DefaultPolicy().MaxDiscount, sc.Policy.MaxDiscount)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeFile(t, "s.yaml", "seed: 1\nconfig:\n  day_cnt: 3\n")
	_, err := loadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := loadScenario(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_AbsolutePathsKept(t *testing.T) {
	abs, err := filepath.Abs(filepath.Join(testdataDir, "drugs.csv"))
	require.NoError(t, err)
	path := writeFile(t, "s.yaml", "drugs_file: "+abs+"\n")

	sc, err := loadScenario(path)

	require.NoError(t, err)
	assert.Equal(t, abs, sc.DrugsFile)
	assert.Empty(t, sc.RecurringFile)
}

func TestLoadBook(t *testing.T) {
	drugs := filepath.Join(testdataDir, "drugs.csv")
	recurring := filepath.Join(testdataDir, "recurring.csv")

	t.Run("csv with recurring", func(t *testing.T) {
		b, err := loadBook(drugs, recurring)
		require.NoError(t, err)
		assert.Len(t, b.Drugs, 5)
		assert.Len(t, b.Recurring, 3)
	})
	t.Run("yaml carries its own recurring orders", func(t *testing.T) {
		b, err := loadBook(filepath.Join(testdataDir, "catalog.yaml"), "")
		require.NoError(t, err)
		assert.Len(t, b.Recurring, 1)
	})
	t.Run("recurring file replaces yaml orders", func(t *testing.T) {
		b, err := loadBook(filepath.Join(testdataDir, "catalog.yaml"), recurring)
		require.NoError(t, err)
		assert.Len(t, b.Recurring, 3)
	})
	t.Run("no catalog", func(t *testing.T) {
		_, err := loadBook("", recurring)
		assert.ErrorIs(t, err, catalog.ErrCatalogLoad)
	})
	t.Run("recurring names unknown drug", func(t *testing.T) {
		bad := writeFile(t, "r.csv", "drugs;period;client;address;phone;card_id\nmorphine,1;2;A;B;C;\n")
		_, err := loadBook(drugs, bad)
		assert.ErrorIs(t, err, catalog.ErrCatalogLoad)
	})
}
