package models

import "time"

// Notification is an inbox row written by the queue worker after a
// workflow event. Delivery to external push channels is out of scope;
// this table is the system boundary.
type Notification struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	RecipientRole string     `gorm:"index:idx_notification_recipient;not null" json:"recipient_role"`
	RecipientID   uint       `gorm:"index:idx_notification_recipient;not null" json:"recipient_id"` // 0 broadcasts to all admins
	Kind          string     `gorm:"index;not null" json:"kind"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	Link          string     `json:"link,omitempty"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Notification) TableName() string {
	return "notifications"
}
