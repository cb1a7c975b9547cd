package model

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a markdown journal note. The markdown column only ever holds
// ciphertext: encryption happens in the service layer before the entity store
// sees the row, and decrypted text is returned through read-only projections,
// never written back into this struct.
type Entry struct {
	Base
	ThreadID          uuid.UUID `gorm:"column:thread_id;type:uuid;not null;index:ix_entries_thread_id" json:"thread_id"`
	EncryptedMarkdown *string   `gorm:"column:encrypted_markdown" json:"-"`
	WrittenAt         time.Time `gorm:"column:written_at;not null" json:"written_at"`

	Thread Thread `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Entry) TableName() string {
	return "entries"
}
