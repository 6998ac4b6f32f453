package mapping

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML table file and overlays it onto the built-in defaults.
// Keys present in the file replace the default entry for that key; tables
// absent from the file stay at their defaults.
func Load(path string) (Tables, error) {
	tables := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return tables, fmt.Errorf("read mapping file: %w", err)
	}

	var overlay Tables
	if err := toml.Unmarshal(raw, &overlay); err != nil {
		return tables, fmt.Errorf("parse mapping file: %w", err)
	}

	merge(tables.Weapons, overlay.Weapons)
	merge(tables.VehicleWeaponsFactionless, overlay.VehicleWeaponsFactionless)
	merge(tables.Factionless, overlay.Factionless)
	merge(tables.BasicCategoriesAllies, overlay.BasicCategoriesAllies)
	merge(tables.BasicCategoriesAxis, overlay.BasicCategoriesAxis)
	merge(tables.VehicleClasses, overlay.VehicleClasses)
	merge(tables.VehiclesAllies, overlay.VehiclesAllies)
	merge(tables.VehiclesAxis, overlay.VehiclesAxis)

	return tables, nil
}

func merge(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}
