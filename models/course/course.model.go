package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a learning course within a session. The ordered block
// list (text, media, questionnaire) is stored serialized in Blocks; decode
// it with DecodeBlocks rather than touching the raw JSON.
type Course struct {
	gorm.Model
	SessionID   uint           `json:"session_id" gorm:"index;not null"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Author      string         `json:"author"`
	OrderIndex  int            `json:"order_index" gorm:"default:0"` // Course order within session
	Blocks      datatypes.JSON `json:"blocks"`
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsDeleted   bool           `gorm:"default:false"`
}
