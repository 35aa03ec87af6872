package report

import (
	"embed"
	"html/template"
)

//go:embed templates/day_report.html
var templatesFS embed.FS

const DayReportSubject = "RSU - Parte diario"

// DayReportTemplate 解析每日报表邮件模板，数据类型为 domain.DayReportMailData
func DayReportTemplate() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/day_report.html")
}
