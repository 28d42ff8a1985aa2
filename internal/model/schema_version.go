package model

// SchemaVersion is the single-row version record the migration runner
// maintains. Rewritten by delete-then-insert so a missing or corrupt row
// never blocks startup.
type SchemaVersion struct {
	Version int `gorm:"primaryKey" json:"version"`
}

func (SchemaVersion) TableName() string {
	return "database_version"
}
