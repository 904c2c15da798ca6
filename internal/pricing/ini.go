package pricing

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"coldcalc/internal/logging"
)

const (
	keyMonthlyPrice = "monthly_price"
	keyAnnualPrice  = "annual_price"
	keyCapacity     = "capacity"
)

// LoadTiersINI reads a pricing table from an INI file. Each section is one
// tier, named after the section, in file order:
//
//	[Basic]
//	monthly_price = 39
//	annual_price  = 32.5
//	capacity      = 6000
func LoadTiersINI(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open tiers file: %w", err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tiers file: %w", err)
	}

	table, err := parseTiers(file)
	if err != nil {
		return nil, fmt.Errorf("invalid tiers file %s: %w", path, err)
	}

	logging.Debug("Loaded pricing tiers", map[string]interface{}{
		"path":  path,
		"tiers": table.Len(),
	})

	return table, nil
}

func parseTiers(file *ini.File) (*Table, error) {
	var tiers []Tier
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection || strings.EqualFold(section.Name(), "DEFAULT") {
			continue
		}

		tier := Tier{Name: section.Name()}
		for key, dst := range map[string]*float64{
			keyMonthlyPrice: &tier.MonthlyPrice,
			keyAnnualPrice:  &tier.AnnualPrice,
			keyCapacity:     &tier.CapacityEmailsPerMonth,
		} {
			if !section.HasKey(key) {
				return nil, fmt.Errorf("tier %q: missing key %q", tier.Name, key)
			}
			v, err := section.Key(key).Float64()
			if err != nil {
				return nil, fmt.Errorf("tier %q: key %q: %w", tier.Name, key, err)
			}
			*dst = v
		}
		tiers = append(tiers, tier)
	}

	return NewTable(tiers)
}

// WriteTiersINI writes the table in the format LoadTiersINI reads
func WriteTiersINI(table *Table, path string) error {
	file := ini.Empty()
	for _, tier := range table.Tiers() {
		section, err := file.NewSection(tier.Name)
		if err != nil {
			return fmt.Errorf("failed to add tier %q: %w", tier.Name, err)
		}
		section.Key(keyMonthlyPrice).SetValue(formatFloat(tier.MonthlyPrice))
		section.Key(keyAnnualPrice).SetValue(formatFloat(tier.AnnualPrice))
		section.Key(keyCapacity).SetValue(formatFloat(tier.CapacityEmailsPerMonth))
	}

	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("failed to write tiers file: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
