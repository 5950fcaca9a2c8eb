package model

import "time"

// AbuseFlag - отметка о нарушении лимитов
type AbuseFlag struct {
	ID        int64
	UserID    int
	Reason    string
	CreatedAt time.Time
}
