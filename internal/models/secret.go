package models

import "time"

// DualSecret - пара секретов субъекта. Primary означает "я в безопасности",
// Duress - "меня принуждают". Хранятся только bcrypt-хеши.
type DualSecret struct {
	SubjectID   string    `json:"subject_id"`
	PrimaryHash []byte    `json:"-"`
	DuressHash  []byte    `json:"-"`
	UpdatedAt   time.Time `json:"updated_at"`
}
