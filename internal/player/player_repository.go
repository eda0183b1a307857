package player

import (
	"context"

	"gorm.io/gorm"

	"github.com/miximax/miximax/internal/models"
)

// MirrorBatchSize is the number of rows inserted per statement.
const MirrorBatchSize = 100

// Row is the relational mirror of a Player.
type Row struct {
	models.BaseModel
	ExternalID   int    `gorm:"not null;index"`
	Name         string `gorm:"size:255;not null"`
	Nickname     string `gorm:"size:255"`
	NameJp       string `gorm:"size:255"`
	Image        string `gorm:"type:text"`
	Element      string `gorm:"size:50"`
	Position     string `gorm:"size:10"`
	AltPosition  string `gorm:"size:10"`
	Role         string `gorm:"size:50"`
	Affinity     string `gorm:"size:50"`
	Kick         int    `gorm:"default:0"`
	Control      int    `gorm:"default:0"`
	Technique    int    `gorm:"default:0"`
	Pressure     int    `gorm:"default:0"`
	Physical     int    `gorm:"default:0"`
	Agility      int    `gorm:"default:0"`
	Intelligence int    `gorm:"default:0"`
	Total        int    `gorm:"default:0"`
}

func (Row) TableName() string { return "players" }

// RowFromPlayer maps a dataset record to its mirror row.
func RowFromPlayer(p Player) Row {
	return Row{
		ExternalID:   p.ID,
		Name:         p.Name,
		Nickname:     p.Nickname,
		NameJp:       p.NameJp,
		Image:        p.Image,
		Element:      p.Element,
		Position:     p.Position,
		AltPosition:  p.AltPosition,
		Role:         p.Role,
		Affinity:     p.Affinity,
		Kick:         p.Kick,
		Control:      p.Control,
		Technique:    p.Technique,
		Pressure:     p.Pressure,
		Physical:     p.Physical,
		Agility:      p.Agility,
		Intelligence: p.Intelligence,
		Total:        p.Total,
	}
}

// PlayerRepository writes the players mirror.
type PlayerRepository interface {
	Migrate(ctx context.Context) error
	ReplaceAll(ctx context.Context, players []Player) (int, error)
	Count(ctx context.Context) (int64, error)
}

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository creates a gorm-backed PlayerRepository.
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&Row{})
}

// ReplaceAll clears the table and inserts every record, placeholders
// included, in one transaction.
func (r *playerRepository) ReplaceAll(ctx context.Context, players []Player) (int, error) {
	rows := make([]Row, 0, len(players))
	for _, p := range players {
		rows = append(rows, RowFromPlayer(p))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Row{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, MirrorBatchSize).Error
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func (r *playerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&Row{}).Count(&total).Error
	return total, err
}
