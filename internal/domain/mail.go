package domain

const MailTypeDayReport = "day_report"

type MailMessage struct {
	Type string   `json:"type"`
	To   []string `json:"to"`
	Data any      `json:"data"`
}

type ShiftReport struct {
	Shift             Shift   `json:"shift"`
	Supervisor        string  `json:"supervisor"`
	SubSupervisor     string  `json:"subSupervisor"`
	Routes            int     `json:"routes"`
	Complete          int     `json:"complete"`
	Incomplete        int     `json:"incomplete"`
	Pending           int     `json:"pending"`
	RouteTonnage      float64 `json:"routeTonnage"`
	TransferTonnage   float64 `json:"transferTonnage"`
	Absences          int     `json:"absences"`
	ReplacementsInUse int     `json:"replacementsInUse"`
}

type DayReportMailData struct {
	Date   string        `json:"date"`
	Device string        `json:"device"`
	Shifts []ShiftReport `json:"shifts"`
}
