package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"github.com/astn-platform/space_booking_app/internal/core/domain"
	"github.com/astn-platform/space_booking_app/internal/utils/timeutils"
)

// Row is one flattened booking as it appears in both CSV and JSON exports.
// The two formats always carry the same rows in the same order.
type Row struct {
	BookingID           string `json:"bookingID"`
	Date                string `json:"date"`
	StartTime           string `json:"startTime"` // HH:MM
	EndTime             string `json:"endTime"`   // HH:MM
	BookingType         string `json:"bookingType"`
	Status              string `json:"status"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Organization        string `json:"organization"`
	Title               string `json:"title"`
	WorkingOn           string `json:"workingOn"`
	InterestedInMeeting string `json:"interestedInMeeting"`
	ApprovedByName      string `json:"approvedByName"`
	RejectionReason     string `json:"rejectionReason"`
	CustomFields        string `json:"customFields"` // "fieldId=value; ..." in submission order
}

// Flatten projects enriched bookings into export rows.
func Flatten(bookings []domain.EnrichedBooking) []Row {
	rows := make([]Row, 0, len(bookings))
	for _, b := range bookings {
		row := Row{
			BookingID:   b.BookingID,
			Date:        b.Date,
			StartTime:   timeutils.FormatMinutes(b.StartMinutes),
			EndTime:     timeutils.FormatMinutes(b.EndMinutes),
			BookingType: string(b.BookingType),
			Status:      string(b.Status),
		}
		if b.Profile != nil {
			row.Name = b.Profile.Name
			row.Email = deref(b.Profile.Email)
			row.Organization = deref(b.Profile.Organization)
			row.Title = deref(b.Profile.Title)
		}
		row.WorkingOn = deref(b.WorkingOn)
		row.InterestedInMeeting = deref(b.InterestedInMeeting)
		row.ApprovedByName = deref(b.ApprovedByName)
		row.RejectionReason = deref(b.RejectionReason)

		if len(b.CustomFieldResponses) > 0 {
			pairs := make([]string, 0, len(b.CustomFieldResponses))
			for _, r := range b.CustomFieldResponses {
				pairs = append(pairs, r.FieldID+"="+r.Value)
			}
			row.CustomFields = strings.Join(pairs, "; ")
		}

		rows = append(rows, row)
	}
	return rows
}

var csvHeader = []string{
	"bookingID", "date", "startTime", "endTime", "bookingType", "status",
	"name", "email", "organization", "title",
	"workingOn", "interestedInMeeting", "approvedByName", "rejectionReason", "customFields",
}

// WriteCSV writes the rows as CSV with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.BookingID, r.Date, r.StartTime, r.EndTime, r.BookingType, r.Status,
			r.Name, r.Email, r.Organization, r.Title,
			r.WorkingOn, r.InterestedInMeeting, r.ApprovedByName, r.RejectionReason, r.CustomFields,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows as a JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
