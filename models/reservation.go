package models

import "errors"

var ErrMissingTimestamp = errors.New("timestamp, reserve_start and reserve_end are required")

type Reservation struct {
	ReserveID    uint      `gorm:"column:reserve_id;primaryKey;autoIncrement" json:"reserve_id"`
	Timestamp    NaiveTime `gorm:"column:timestamp;not null" json:"timestamp"`
	User         string    `gorm:"column:user;type:varchar(255);not null;index" json:"user"`
	UICCode      int64     `gorm:"column:uiccode;not null;index" json:"uiccode"`
	ReserveStart NaiveTime `gorm:"column:reserve_start;not null" json:"reserve_start"`
	ReserveEnd   NaiveTime `gorm:"column:reserve_end;not null" json:"reserve_end"`
}

// ReservationInput adalah body POST/PUT; reserve_id selalu ditentukan server.
type ReservationInput struct {
	Timestamp    NaiveTime `json:"timestamp"`
	User         string    `json:"user" binding:"required,max=255"`
	UICCode      int64     `json:"uiccode" binding:"required,gt=0"`
	ReserveStart NaiveTime `json:"reserve_start"`
	ReserveEnd   NaiveTime `json:"reserve_end"`
}

// ToReservation membangun record dari input untuk id tertentu (0 untuk insert).
func (in ReservationInput) ToReservation(id uint) Reservation {
	return Reservation{
		ReserveID:    id,
		Timestamp:    NewNaiveTime(in.Timestamp.Time),
		User:         in.User,
		UICCode:      in.UICCode,
		ReserveStart: NewNaiveTime(in.ReserveStart.Time),
		ReserveEnd:   NewNaiveTime(in.ReserveEnd.Time),
	}
}

// Validate memastikan ketiga timestamp terisi.
func (in ReservationInput) Validate() error {
	if in.Timestamp.IsZero() || in.ReserveStart.IsZero() || in.ReserveEnd.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}
