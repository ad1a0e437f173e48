package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"yplanner/internal/entities"
)

type BookingDTO struct {
	ID               uuid.UUID   `json:"id"`
	BranchID         uuid.UUID   `json:"branch_id"`
	YClientsRecordID int64       `json:"yclients_record_id"`
	StaffID          null.String `json:"staff_id"`
	ServiceID        null.String `json:"service_id"`
	StartsAtUTC      time.Time   `json:"starts_at_utc"`
	EndsAtUTC        time.Time   `json:"ends_at_utc"`
	Status           string      `json:"status"`
	IsMobile         bool        `json:"is_mobile"`
	ClientName       null.String `json:"client_name"`
	ClientPhone      null.String `json:"client_phone"`
}

func BookingToDTO(b entities.Booking) BookingDTO {
	d := BookingDTO{
		ID:               b.ID,
		BranchID:         b.BranchID,
		YClientsRecordID: b.YClientsRecordID,
		StartsAtUTC:      b.StartsAtUTC,
		EndsAtUTC:        b.EndsAtUTC,
		Status:           b.Status,
		IsMobile:         b.IsMobile,
		ClientName:       null.StringFromPtr(b.ClientName),
		ClientPhone:      null.StringFromPtr(b.ClientPhone),
	}
	if b.StaffID != nil {
		d.StaffID = null.StringFrom(b.StaffID.String())
	}
	if b.ServiceID != nil {
		d.ServiceID = null.StringFrom(b.ServiceID.String())
	}
	return d
}
