package model

import "time"

// Meeting is a recorded client meeting. Meetings are immutable once stored.
type Meeting struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"userId"`
	CustomerName          string    `json:"customerName"`
	Photo                 string    `json:"photo"` // URL or inline base64 image
	MeetingStartDate      string    `json:"meetingStartDate"`
	MeetingStartTimestamp string    `json:"meetingStartTimestamp"`
	Location              string    `json:"location"`
	Address               string    `json:"address"`
	Source                string    `json:"source"`
	PhoneNumber           string    `json:"phoneNumber"`
	LoanExpected          string    `json:"loanExpected"`
	Product               string    `json:"product"`
	Status                string    `json:"status"`
	Remark2               string    `json:"remark2"`
	CreatedAt             time.Time `json:"-"`
}

// CreateMeetingRequest is the body of POST /meetings
type CreateMeetingRequest struct {
	CustomerName          string `json:"customerName" binding:"required"`
	Photo                 string `json:"photo"`
	MeetingStartDate      string `json:"meetingStartDate" binding:"required"`
	MeetingStartTimestamp string `json:"meetingStartTimestamp" binding:"required"`
	Location              string `json:"location" binding:"required"`
	Address               string `json:"address"`
	Source                string `json:"source"`
	PhoneNumber           string `json:"phoneNumber"`
	LoanExpected          string `json:"loanExpected"`
	Product               string `json:"product"`
	Status                string `json:"status"`
	Remark2               string `json:"remark2"`
}

const (
	ImageKindURL    = "url"
	ImageKindInline = "inline"
	ImageKindBroken = "broken"
)

// MeetingImage describes how a meeting photo should be served.
// Source is the redirect target for ImageKindURL and a data URI for ImageKindInline.
type MeetingImage struct {
	Kind   string
	Source string
}

// ReportColumns is the column order of the spreadsheet mirror and the CSV export
var ReportColumns = []string{
	"User", "Client Name", "Date", "Source", "Phone Number", "Customer Location",
	"Product", "Loan Expected", "Photo", "Remark1", "Remark2",
}

// ReportRow flattens a meeting into the reporting column order
func (m *Meeting) ReportRow(ownerName, imageURL string) []string {
	return []string{
		ownerName,
		m.CustomerName,
		m.MeetingStartDate,
		m.Source,
		m.PhoneNumber,
		m.Location,
		m.Product,
		m.LoanExpected,
		imageURL,
		m.Status,
		m.Remark2,
	}
}
