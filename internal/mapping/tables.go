// Package mapping supplies the weapon and vehicle category tables consumed
// by the stats engine. The tables are data, not logic: the built-in set
// covers the common server loadout and a TOML file can extend or override
// any of them.
package mapping

import "github.com/Soxxes/HLLLogUtilities/internal/stats"

// Tables bundles every category table the reports use.
type Tables struct {
	// Weapons maps raw log identifiers to display names, applied during
	// replay.
	Weapons map[string]string `toml:"weapons"`

	// VehicleWeaponsFactionless folds vehicle-mounted weapon names into
	// their factionless vehicle name.
	VehicleWeaponsFactionless map[string]string `toml:"vehicle_weapons_factionless"`
	// Factionless folds faction-specific infantry weapon names into a
	// faction-neutral name.
	Factionless map[string]string `toml:"factionless"`

	// BasicCategoriesAllies and BasicCategoriesAxis fold weapon names into
	// broad categories, one table per side.
	BasicCategoriesAllies map[string]string `toml:"basic_categories_allies"`
	BasicCategoriesAxis   map[string]string `toml:"basic_categories_axis"`

	// VehicleClasses folds vehicle names into their class, and the two
	// side tables restrict the fold to one faction's vehicles.
	VehicleClasses map[string]string `toml:"vehicle_classes"`
	VehiclesAllies map[string]string `toml:"vehicles_allies"`
	VehiclesAxis   map[string]string `toml:"vehicles_axis"`
}

func (t Tables) table(m map[string]string) stats.CategoryTable { return stats.CategoryTable(m) }

// Default returns the built-in table set.
func Default() Tables {
	return Tables{
		Weapons: map[string]string{
			"M1 GARAND":            "M1 Garand",
			"M1 CARBINE":           "M1 Carbine",
			"M1A1 THOMPSON":        "M1A1 Thompson",
			"M3 GREASE GUN":        "M3 Grease Gun",
			"BROWNING M1919":       "M1919 Browning",
			"M1918A2 BAR":          "M1918A2 BAR",
			"M1903 SPRINGFIELD":    "M1903 Springfield",
			"COLT M1911":           "Colt M1911",
			"MK2 GRENADE":          "Mk 2 Grenade",
			"M2 FLAMETHROWER":      "M2 Flamethrower",
			"BAZOOKA":              "Bazooka",
			"KARABINER 98K":        "Kar98k",
			"GEWEHR 43":            "Gewehr 43",
			"MP40":                 "MP40",
			"STG44":                "StG44",
			"MG42":                 "MG42",
			"MG34":                 "MG34",
			"FG42":                 "FG42",
			"LUGER P08":            "Luger P08",
			"WALTHER P38":          "Walther P38",
			"M24 STIELHANDGRANATE": "M24 Stielhandgranate",
			"PANZERSCHRECK":        "Panzerschreck",
			"FLAMMENWERFER 41":     "Flammenwerfer 41",
			"SATCHEL":              "Satchel Charge",
			"MINE":                 "A.P. Mine",
			"SHERMAN_75MM":         "Sherman 75mm",
			"SHERMAN_76MM":         "Sherman 76mm",
			"STUART_M5A1":          "Stuart M5A1",
			"GREYHOUND":            "Greyhound",
			"PANTHER_75MM":         "Panther 75mm",
			"TIGER_88MM":           "Tiger 88mm",
			"PANZER_IV_75MM":       "Panzer IV 75mm",
			"PUMA_50MM":            "Puma 50mm",
			"LUCHS_20MM":           "Luchs 20mm",
			"150MM HOWITZER":       "150mm Howitzer",
			"155MM HOWITZER":       "155mm Howitzer",
		},
		VehicleWeaponsFactionless: map[string]string{
			"Sherman 75mm":   "Medium Tank",
			"Sherman 76mm":   "Medium Tank",
			"Panzer IV 75mm": "Medium Tank",
			"Panther 75mm":   "Heavy Tank",
			"Tiger 88mm":     "Heavy Tank",
			"Stuart M5A1":    "Light Tank",
			"Luchs 20mm":     "Light Tank",
			"Greyhound":      "Recon Vehicle",
			"Puma 50mm":      "Recon Vehicle",
		},
		Factionless: map[string]string{
			"M24 Stielhandgranate": "Grenade",
			"Mk 2 Grenade":         "Grenade",
			"Bazooka":              "AT Launcher",
			"Panzerschreck":        "AT Launcher",
			"M2 Flamethrower":      "Flamethrower",
			"Flammenwerfer 41":     "Flamethrower",
			"155mm Howitzer":       "Artillery",
			"150mm Howitzer":       "Artillery",
		},
		BasicCategoriesAllies: map[string]string{
			"M1 Garand":         "Rifle",
			"M1 Carbine":        "Rifle",
			"M1903 Springfield": "Sniper",
			"M1A1 Thompson":     "SMG",
			"M3 Grease Gun":     "SMG",
			"M1918A2 BAR":       "Assault",
			"M1919 Browning":    "MG",
			"Colt M1911":        "Pistol",
			"Mk 2 Grenade":      "Grenade",
			"Bazooka":           "AT",
			"M2 Flamethrower":   "Flamethrower",
			"155mm Howitzer":    "Artillery",
			"Satchel Charge":    "Explosives",
			"A.P. Mine":         "Explosives",
		},
		BasicCategoriesAxis: map[string]string{
			"Kar98k":               "Rifle",
			"Gewehr 43":            "Rifle",
			"MP40":                 "SMG",
			"StG44":                "Assault",
			"FG42":                 "Assault",
			"MG42":                 "MG",
			"MG34":                 "MG",
			"Luger P08":            "Pistol",
			"Walther P38":          "Pistol",
			"M24 Stielhandgranate": "Grenade",
			"Panzerschreck":        "AT",
			"Flammenwerfer 41":     "Flamethrower",
			"150mm Howitzer":       "Artillery",
			"Satchel Charge":       "Explosives",
			"A.P. Mine":            "Explosives",
		},
		VehicleClasses: map[string]string{
			"Sherman 75mm":   "Medium Tank",
			"Sherman 76mm":   "Medium Tank",
			"Panzer IV 75mm": "Medium Tank",
			"Panther 75mm":   "Heavy Tank",
			"Tiger 88mm":     "Heavy Tank",
			"Stuart M5A1":    "Light Tank",
			"Luchs 20mm":     "Light Tank",
			"Greyhound":      "Recon Vehicle",
			"Puma 50mm":      "Recon Vehicle",
		},
		VehiclesAllies: map[string]string{
			"Sherman 75mm": "Sherman 75mm",
			"Sherman 76mm": "Sherman 76mm",
			"Stuart M5A1":  "Stuart M5A1",
			"Greyhound":    "Greyhound",
		},
		VehiclesAxis: map[string]string{
			"Panzer IV 75mm": "Panzer IV 75mm",
			"Panther 75mm":   "Panther 75mm",
			"Tiger 88mm":     "Tiger 88mm",
			"Luchs 20mm":     "Luchs 20mm",
			"Puma 50mm":      "Puma 50mm",
		},
	}
}

// Category table accessors, typed for the stats engine.

func (t Tables) WeaponNames() map[string]string { return t.Weapons }

func (t Tables) VehicleWeaponsFactionlessTable() stats.CategoryTable {
	return t.table(t.VehicleWeaponsFactionless)
}
func (t Tables) FactionlessTable() stats.CategoryTable { return t.table(t.Factionless) }
func (t Tables) BasicCategoriesAlliesTable() stats.CategoryTable {
	return t.table(t.BasicCategoriesAllies)
}
func (t Tables) BasicCategoriesAxisTable() stats.CategoryTable {
	return t.table(t.BasicCategoriesAxis)
}
func (t Tables) VehicleClassesTable() stats.CategoryTable { return t.table(t.VehicleClasses) }
func (t Tables) VehiclesAlliesTable() stats.CategoryTable { return t.table(t.VehiclesAllies) }
func (t Tables) VehiclesAxisTable() stats.CategoryTable   { return t.table(t.VehiclesAxis) }
