package core

import (
	"time"
)

// Property is a physical site (building, facility) that contains rooms.
type Property struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"size:255;not null"`
	Address   string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Room is a location within a property. Machines are installed in rooms.
type Room struct {
	ID         string    `gorm:"primaryKey;size:36"`
	PropertyID string    `gorm:"index;size:36;not null"`
	Name       string    `gorm:"size:255;not null"`
	Floor      string    `gorm:"size:64"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// Machine is a maintainable piece of equipment.
type Machine struct {
	ID           string     `gorm:"primaryKey;size:36"`
	RoomID       string     `gorm:"index;size:36;not null"`
	Name         string     `gorm:"size:255;not null"`
	Model        string     `gorm:"size:255"`
	SerialNumber string     `gorm:"index;size:255"`
	InstalledAt  *time.Time
	Notes        string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}
