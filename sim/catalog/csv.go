package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pharmasim/pharmasim/sim"
)

var (
	drugColumns      = []string{"name", "base_price", "base_markup", "standard_quantity", "shelf_life"}
	recurringColumns = []string{"drugs", "period", "client", "address", "phone", "card_id"}
)

// LoadDrugsCSV reads name;base_price;base_markup;standard_quantity;shelf_life
// rows after a header row.
func LoadDrugsCSV(path string) ([]sim.DrugSpec, error) {
	var specs []sim.DrugSpec
	err := readRows(path, len(drugColumns), func(line int, row []string) error {
		s, err := parseDrugRow(row)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := s.Validate(len(specs)); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		specs = append(specs, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return specs, nil
}

// LoadRecurringCSV reads drugs;period;client;address;phone;card_id rows after
// a header row. The drugs column lists name,quantity pairs separated by dots,
// for example "aspirin,2.insulin,1". An empty card_id means no loyalty card.
func LoadRecurringCSV(path string) ([]sim.RecurringSpec, error) {
	var specs []sim.RecurringSpec
	err := readRows(path, len(recurringColumns), func(line int, row []string) error {
		s, err := parseRecurringRow(row)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		specs = append(specs, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return specs, nil
}

func readRows(path string, columns int, each func(line int, row []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header row
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return loadErr(path, "missing header row")
		}
		return fmt.Errorf("%w: %s: reading header: %w", ErrCatalogLoad, path, err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCatalogLoad, path, err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) < columns {
			return loadErr(path, "line %d has %d columns, expected %d", line, len(row), columns)
		}
		if err := each(line, row); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrCatalogLoad, path, err)
		}
	}
}

func parseDrugRow(row []string) (sim.DrugSpec, error) {
	var s sim.DrugSpec
	var err error
	s.Name = strings.TrimSpace(row[0])
	if s.BasePrice, err = strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64); err != nil {
		return s, fmt.Errorf("base_price: %w", err)
	}
	if s.BaseMarkup, err = strconv.ParseFloat(strings.TrimSpace(row[2]), 64); err != nil {
		return s, fmt.Errorf("base_markup: %w", err)
	}
	if s.StandardQuantity, err = strconv.Atoi(strings.TrimSpace(row[3])); err != nil {
		return s, fmt.Errorf("standard_quantity: %w", err)
	}
	if s.ShelfLifeDays, err = strconv.Atoi(strings.TrimSpace(row[4])); err != nil {
		return s, fmt.Errorf("shelf_life: %w", err)
	}
	return s, nil
}

func parseRecurringRow(row []string) (sim.RecurringSpec, error) {
	drugs, err := parseDrugList(row[0])
	if err != nil {
		return sim.RecurringSpec{}, err
	}
	period, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return sim.RecurringSpec{}, fmt.Errorf("period: %w", err)
	}
	return sim.RecurringSpec{
		Drugs:    drugs,
		Period:   period,
		Customer: row[2],
		Address:  row[3],
		Phone:    row[4],
		CardID:   strings.TrimSpace(row[5]),
	}, nil
}

func parseDrugList(field string) (map[string]int, error) {
	drugs := make(map[string]int)
	for _, item := range strings.Split(field, ".") {
		name, qty, ok := strings.Cut(item, ",")
		if !ok {
			return nil, fmt.Errorf("drugs: %q is not a name,quantity pair", item)
		}
		name = strings.TrimSpace(name)
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("drugs: quantity of %q: %w", name, err)
		}
		if name == "" || n <= 0 {
			return nil, fmt.Errorf("drugs: %q needs a name and a positive quantity", item)
		}
		drugs[name] += n
	}
	return drugs, nil
}
