package attachment

import "time"

// Attachment is a proof-of-payment blob. The ID matches the ProofRef
// embedded in the payroll record metadata.
type Attachment struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	FileName  string `gorm:"type:varchar(255);not null"`
	FileSize  int64  `gorm:"type:bigint;not null;default:0"`
	Content   []byte `gorm:"type:bytea;not null"`
	CreatedAt time.Time
}

func (Attachment) TableName() string {
	return "proof_blobs"
}
