package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateInchargeMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

// SessionReportMailData carries the aggregated duty report for a completed
// session, mailed to the group incharge.
type SessionReportMailData struct {
	Group        string            `json:"group"`
	Date         string            `json:"date"`
	Start        string            `json:"start"`
	End          string            `json:"end"`
	Locations    string            `json:"locations"`
	TotalPresent int               `json:"totalPresent"`
	ShiftTotals  []ShiftTotalRow   `json:"shiftTotals"`
	Deployment   []DeploymentRow   `json:"deployment"`
	Records      []ReportRecordRow `json:"records"`
	VehicleCount int               `json:"vehicleCount"`
	IssueCount   int               `json:"issueCount"`
}

type ShiftTotalRow struct {
	Band  string `json:"band"`
	Slot  string `json:"slot"`
	Count int    `json:"count"`
}

type DeploymentRow struct {
	Location string         `json:"location"`
	Point    string         `json:"point"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
}

type ReportRecordRow struct {
	SewadarName string `json:"sewadarName"`
	Group       string `json:"group"`
	Location    string `json:"location"`
	Point       string `json:"point"`
	InTime      string `json:"inTime"`
	OutTime     string `json:"outTime"`
	Duration    string `json:"duration"`
	MarkedBy    string `json:"markedBy"`
}
