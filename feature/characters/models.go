package characters

// Staging table names.
const (
	RawTable = "raw_chinfo"
	CurTable = "cur_chinfo"
)

// RankedRecord is one character ranked in one bracket on a processing date.
// EntityID is nil when the source row has no character id. Rank is 0 when
// the source ranking is missing.
type RankedRecord struct {
	EntityID       *int64
	DisplayName    string
	LocationSlug   string
	BracketID      string
	SeasonID       int
	ProcessingDate string
	Rank           int
	Rating         int
	Wins           int
	Losses         int
}

// Candidate is the single record kept for a character after cross-bracket
// deduplication.
type Candidate struct {
	EntityID       int64
	DisplayName    string
	LocationSlug   string
	BracketID      string
	SeasonID       int
	ProcessingDate string
	// BracketRank is the 1-based position inside the source bracket.
	BracketRank int
	// SelectionRank is the 1-based position across all brackets.
	SelectionRank int
}

// EnrichedRow is a candidate joined with fields of its profile.
// Profile fields are nil when missing from the document.
type EnrichedRow struct {
	EntityID          int64   `json:"char_id"`
	DisplayName       string  `json:"char_name"`
	LocationSlug      string  `json:"slug_name"`
	BracketID         string  `json:"bracket_id"`
	SeasonID          int     `json:"season_id"`
	ProcessingDate    string  `json:"fecha_proceso"`
	SelectionRank     int     `json:"selection_rank"`
	Faction           *string `json:"faction_type"`
	ClassName         *string `json:"class_name"`
	SpecName          *string `json:"current_spec"`
	AverageItemLevel  *int    `json:"average_item_level"`
	EquippedItemLevel *int    `json:"equipped_item_level"`
}

// ProfileRow is one enriched character as landed: every value is text.
type ProfileRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RealmSlug     string `json:"realm_slug"`
	Faction       string `json:"faction"`
	Class         string `json:"class"`
	Spec          string `json:"spec"`
	AverageIlvl   string `json:"a_ilvl"`
	EquippedIlvl  string `json:"e_ilvl"`
	Bracket       string `json:"bracket"`
	SelectionRank string `json:"selection_rank"`
	FechaProceso  string `json:"fecha_proceso"`
}

// RawChinfo is a row of raw_chinfo.
type RawChinfo struct {
	ID            string `gorm:"column:id"`
	Name          string `gorm:"column:name"`
	RealmSlug     string `gorm:"column:realm_slug"`
	Faction       string `gorm:"column:faction"`
	Class         string `gorm:"column:class"`
	Spec          string `gorm:"column:spec"`
	AverageIlvl   string `gorm:"column:a_ilvl"`
	EquippedIlvl  string `gorm:"column:e_ilvl"`
	Bracket       string `gorm:"column:bracket"`
	SelectionRank string `gorm:"column:selection_rank"`
	FechaProceso  string `gorm:"column:fecha_proceso;index"`
}

func (RawChinfo) TableName() string { return RawTable }

// CurChinfo is a typed row of cur_chinfo.
type CurChinfo struct {
	CharID            *int64  `gorm:"column:char_id" json:"char_id"`
	CharName          string  `gorm:"column:char_name" json:"char_name"`
	SlugName          string  `gorm:"column:slug_name" json:"slug_name"`
	FactionType       *string `gorm:"column:faction_type" json:"faction_type"`
	ClassName         *string `gorm:"column:class_name" json:"class_name"`
	CurrentSpec       *string `gorm:"column:current_spec" json:"current_spec"`
	AverageItemLevel  *int    `gorm:"column:average_item_level" json:"average_item_level"`
	EquippedItemLevel *int    `gorm:"column:equipped_item_level" json:"equipped_item_level"`
	BracketID         string  `gorm:"column:bracket_id" json:"bracket_id"`
	SelectionRank     *int    `gorm:"column:selection_rank" json:"selection_rank"`
	FechaProceso      string  `gorm:"column:fecha_proceso;index" json:"fecha_proceso"`
}

func (CurChinfo) TableName() string { return CurTable }
