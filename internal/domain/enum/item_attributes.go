package enum

// CategoryGroup scopes price modifiers to families of service categories.
// General modifiers always apply; textile and leather modifiers apply only
// to items whose category belongs to the matching group.
type CategoryGroup string

const (
	GroupGeneral CategoryGroup = "GENERAL"
	GroupTextile CategoryGroup = "TEXTILE"
	GroupLeather CategoryGroup = "LEATHER"
	GroupLaundry CategoryGroup = "LAUNDRY"
	GroupIroning CategoryGroup = "IRONING"
	GroupDyeing  CategoryGroup = "DYEING"
)

// MaterialType is the primary material of an item.
type MaterialType string

const (
	MaterialCotton        MaterialType = "COTTON"
	MaterialWool          MaterialType = "WOOL"
	MaterialSilk          MaterialType = "SILK"
	MaterialSynthetic     MaterialType = "SYNTHETIC"
	MaterialSmoothLeather MaterialType = "SMOOTH_LEATHER"
	MaterialNubuck        MaterialType = "NUBUCK"
	MaterialSplitLeather  MaterialType = "SPLIT_LEATHER"
	MaterialSuede         MaterialType = "SUEDE"
	MaterialNaturalFur    MaterialType = "NATURAL_FUR"
	MaterialArtificialFur MaterialType = "ARTIFICIAL_FUR"
)

// IsLeather reports whether the material belongs to the leather group.
func (m MaterialType) IsLeather() bool {
	switch m {
	case MaterialSmoothLeather, MaterialNubuck, MaterialSplitLeather, MaterialSuede:
		return true
	}
	return false
}

// IsTextile reports whether the material belongs to the textile group.
func (m MaterialType) IsTextile() bool {
	switch m {
	case MaterialCotton, MaterialWool, MaterialSilk, MaterialSynthetic:
		return true
	}
	return false
}

// IsValid reports whether the value is a known material.
func (m MaterialType) IsValid() bool {
	return m.IsLeather() || m.IsTextile() || m == MaterialNaturalFur || m == MaterialArtificialFur
}

// WearLevel is the declared degree of wear of an item.
type WearLevel string

const (
	Wear30 WearLevel = "PERCENT_30"
	Wear50 WearLevel = "PERCENT_50"
	Wear75 WearLevel = "PERCENT_75"
)

// IsValid reports whether the value is a known wear level.
func (w WearLevel) IsValid() bool {
	switch w {
	case Wear30, Wear50, Wear75:
		return true
	}
	return false
}

// FillerCondition describes the state of an item's filler (down, padding).
type FillerCondition string

const (
	FillerNormal  FillerCondition = "NORMAL"
	FillerClumped FillerCondition = "CLUMPED"
	FillerLeaking FillerCondition = "LEAKING"
)

// IsValid reports whether the value is a known filler condition.
func (f FillerCondition) IsValid() bool {
	switch f {
	case FillerNormal, FillerClumped, FillerLeaking:
		return true
	}
	return false
}

// UnitOfMeasure is the billing unit of a catalog item.
type UnitOfMeasure string

const (
	UnitPiece    UnitOfMeasure = "PIECE"
	UnitKilogram UnitOfMeasure = "KILOGRAM"
	UnitPair     UnitOfMeasure = "PAIR"
	UnitSqMeter  UnitOfMeasure = "SQUARE_METER"
)

// IsValid reports whether the value is a known unit of measure.
func (u UnitOfMeasure) IsValid() bool {
	switch u {
	case UnitPiece, UnitKilogram, UnitPair, UnitSqMeter:
		return true
	}
	return false
}

// ModifierType distinguishes percentage from fixed-amount price modifiers.
type ModifierType string

const (
	ModifierPercentage ModifierType = "PERCENTAGE"
	ModifierFixed      ModifierType = "FIXED"
)

// StainType classifies a stain recorded on an item.
type StainType string

const (
	StainGrease    StainType = "GREASE"
	StainBlood     StainType = "BLOOD"
	StainProtein   StainType = "PROTEIN"
	StainWine      StainType = "WINE"
	StainCoffee    StainType = "COFFEE"
	StainGrass     StainType = "GRASS"
	StainInk       StainType = "INK"
	StainCosmetics StainType = "COSMETICS"
	StainOther     StainType = "OTHER"
)

// DefectType classifies a pre-existing defect or processing risk.
type DefectType string

const (
	DefectWearMarks       DefectType = "WEAR_MARKS"
	DefectTorn            DefectType = "TORN"
	DefectMissingHardware DefectType = "MISSING_HARDWARE"
	DefectDamagedHardware DefectType = "DAMAGED_HARDWARE"
	DefectColorChangeRisk DefectType = "COLOR_CHANGE_RISK"
	DefectDeformationRisk DefectType = "DEFORMATION_RISK"
	DefectNoGuarantee     DefectType = "NO_GUARANTEE"
	DefectOther           DefectType = "OTHER"
)
