package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"webbaby/internal/database"
	"webbaby/internal/models"
)

const configRowID = 1

// ConfigRepository handles the single app_config row
type ConfigRepository struct {
	db database.DBTX
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(db database.DBTX) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Get retrieves the config row, or nil when it has not been created yet
func (r *ConfigRepository) Get() (*models.AppConfig, error) {
	query := `
		SELECT id, theme, mode, disabled_types, child_name, child_surname, birth_ts, birth_weight_grams
		FROM app_config
		WHERE id = ?
	`
	var (
		cfg           models.AppConfig
		disabledTypes string
		birthTs       sql.NullTime
		birthWeight   sql.NullInt64
	)
	err := r.db.QueryRow(query, configRowID).Scan(
		&cfg.ID,
		&cfg.Theme,
		&cfg.Mode,
		&disabledTypes,
		&cfg.ChildName,
		&cfg.ChildSurname,
		&birthTs,
		&birthWeight,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	cfg.DisabledTypes = []string{}
	if disabledTypes != "" {
		if err := json.Unmarshal([]byte(disabledTypes), &cfg.DisabledTypes); err != nil {
			return nil, fmt.Errorf("failed to decode disabled types: %w", err)
		}
	}
	if birthTs.Valid {
		t := birthTs.Time.UTC()
		cfg.BirthTs = &t
	}
	if birthWeight.Valid {
		grams := int(birthWeight.Int64)
		cfg.BirthWeightGrams = &grams
	}

	return &cfg, nil
}

// Save writes the config row, creating it if it does not exist
func (r *ConfigRepository) Save(cfg *models.AppConfig) error {
	disabled := cfg.DisabledTypes
	if disabled == nil {
		disabled = []string{}
	}
	disabledJSON, err := json.Marshal(disabled)
	if err != nil {
		return fmt.Errorf("failed to encode disabled types: %w", err)
	}

	var birthTs, birthWeight interface{}
	if cfg.BirthTs != nil {
		birthTs = cfg.BirthTs.UTC()
	}
	if cfg.BirthWeightGrams != nil {
		birthWeight = *cfg.BirthWeightGrams
	}

	query := `INSERT INTO app_config (id, theme, mode, disabled_types, child_name, child_surname, birth_ts, birth_weight_grams)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)` +
		r.db.GetDialect().UpsertClause("id",
			"theme", "mode", "disabled_types", "child_name", "child_surname", "birth_ts", "birth_weight_grams")

	_, err = r.db.Exec(query, configRowID, cfg.Theme, cfg.Mode, string(disabledJSON),
		cfg.ChildName, cfg.ChildSurname, birthTs, birthWeight)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cfg.ID = configRowID
	return nil
}

// EnsureDefault creates the config row from seed when it is missing and
// returns the stored row
func (r *ConfigRepository) EnsureDefault(seed *models.AppConfig) (*models.AppConfig, error) {
	cfg, err := r.Get()
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}
	if err := r.Save(seed); err != nil {
		return nil, err
	}
	return r.Get()
}
