package main

import (
	"bytes"
	"flag"
	"fmt"
	"html"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
	"github.com/tuumbleweed/xerr"
	"gorm.io/gorm"

	"curlysbooks/src/pkg/config"
	"curlysbooks/src/pkg/money"
	"curlysbooks/src/pkg/receipt"
)

/*
reportOptions controls which receipts are included and where output is written.
*/
type reportOptions struct {
	ConfigPath  string
	Entity      receipt.Entity
	Year        int
	Month       time.Month
	OutputPath  string
	Timezone    string
	MaxRows     int
	ReportTitle string
}

/*
categoryAgg accumulates spend for a category across many receipt lines.
*/
type categoryAgg struct {
	Key             string
	DisplayName     string
	Amount          money.Amount
	ItemLineCount   int64
	ReceiptHitCount int64
}

/*
categoryRow is a rendered row in the final report.
*/
type categoryRow struct {
	Key         string
	DisplayName string
	Amount      money.Amount
	Percent     float64
	Color       string
	BarPercent  int
}

/*
monthlyReport is the computed summary for the HTML report.
*/
type monthlyReport struct {
	Title        string
	Entity       receipt.Entity
	Year         int
	Month        time.Month
	Timezone     string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	GeneratedAt  time.Time
	ReceiptCount int
	TotalSpent   money.Amount
	Rows         []categoryRow
	Notes        []string
}

/*
main reads every receipt line for one entity and month directly
from the database. Earlier this program scanned per-receipt JSON run
files from an -out directory; that shape no longer exists since the
pipeline now persists lines through src/pkg/repository.

Example:

	go run . -entity corp -year 2026 -month 7 -o ./report-2026-07.html
*/
func main() {
	options := parseFlags()

	config.InitializeConfig(options.ConfigPath)

	tl.Log(
		tl.Notice, palette.BlueBold, "Generating monthly expense report for %s %04d-%02d",
		options.Entity, options.Year, int(options.Month),
	)

	db, e := config.OpenDatabase()
	e.QuitIf("error")

	report, reportErr := buildMonthlyReport(db, options)
	if reportErr != nil {
		reportErr.QuitIf("error")
	}

	htmlText := renderHTML(report)

	if writeErr := os.WriteFile(options.OutputPath, []byte(htmlText), 0o644); writeErr != nil {
		e = xerr.NewError(writeErr, "write HTML report file", options.OutputPath)
		e.QuitIf("error")
	}

	tl.Log(tl.Info1, palette.Green, "Saved report to '%s'", options.OutputPath)
}

/*
parseFlags parses CLI flags and returns validated reportOptions.

Defaults:
- current month/year in the selected timezone
- output path: ./tmp/report-YYYY-MM.html
*/
func parseFlags() reportOptions {
	configFlag := flag.String("config", "./cfg/config.json", "Path to your configuration file.")
	entityFlag := flag.String("entity", "corp", "Entity namespace to report on: corp or soleprop.")
	yearFlag := flag.Int("year", 0, "Year to report (default: current year)")
	monthFlag := flag.Int("month", 0, "Month to report 1-12 (default: current month)")
	outputFlag := flag.String("o", "", "Output HTML path (default: ./tmp/report-YYYY-MM.html)")
	timezoneFlag := flag.String("tz", "America/Toronto", "IANA timezone (e.g., America/Toronto)")
	maxRowsFlag := flag.Int("max-rows", 10, "Maximum category rows before grouping remainder into 'Other'")
	titleFlag := flag.String("title", "", "Report title (default: Expense report — Month Year)")

	flag.Parse()

	location, locationErr := time.LoadLocation(*timezoneFlag)
	if locationErr != nil {
		tl.Log(tl.Warning, palette.PurpleBright, "Invalid timezone '%s'; falling back to UTC", *timezoneFlag)
		location = time.UTC
	}

	now := time.Now().In(location)

	yearValue := *yearFlag
	if yearValue == 0 {
		yearValue = now.Year()
	}

	monthValue := *monthFlag
	if monthValue == 0 {
		monthValue = int(now.Month())
	}
	if monthValue < 1 {
		monthValue = 1
	}
	if monthValue > 12 {
		monthValue = 12
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = fmt.Sprintf("./tmp/report-%04d-%02d.html", yearValue, monthValue)
	}

	reportTitle := *titleFlag
	if reportTitle == "" {
		monthName := time.Month(monthValue).String()
		reportTitle = fmt.Sprintf("Expense report — %s %d", monthName, yearValue)
	}

	return reportOptions{
		ConfigPath:  *configFlag,
		Entity:      receipt.Entity(strings.ToLower(strings.TrimSpace(*entityFlag))),
		Year:        yearValue,
		Month:       time.Month(monthValue),
		OutputPath:  outputPath,
		Timezone:    *timezoneFlag,
		MaxRows:     *maxRowsFlag,
		ReportTitle: reportTitle,
	}
}

/*
buildMonthlyReport loads every receipt whose purchase_date falls in the
selected month for options.Entity, then aggregates their lines' amounts
by product_category.
*/
func buildMonthlyReport(db *gorm.DB, options reportOptions) (report monthlyReport, e *xerr.Error) {
	location, locationErr := time.LoadLocation(options.Timezone)
	if locationErr != nil {
		location = time.UTC
	}

	periodStart := time.Date(options.Year, options.Month, 1, 0, 0, 0, 0, location)
	periodEnd := periodStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var receipts []receipt.Receipt
	if err := db.
		Preload("Lines").
		Where("entity = ? AND purchase_date BETWEEN ? AND ?", options.Entity, periodStart, periodEnd).
		Find(&receipts).Error; err != nil {
		e = xerr.NewError(err, "load receipts for report period", map[string]any{"entity": options.Entity, "year": options.Year, "month": int(options.Month)})
		return report, e
	}

	tl.Log(tl.Info1, palette.Cyan, "Found %s receipts for %s %04d-%02d", formatIntHuman(int64(len(receipts))), options.Entity, options.Year, int(options.Month))

	categoryAggByKey := make(map[string]*categoryAgg)
	totalSpent := money.Zero

	for _, rec := range receipts {
		seenCategoriesInThisReceipt := make(map[string]bool)

		for _, line := range rec.Lines {
			if line.LineType != receipt.LineTypeItem && line.LineType != receipt.LineTypeFee {
				continue
			}

			categoryKey := line.ProductCategory
			if categoryKey == "" {
				categoryKey = receipt.CategoryUnknown
			}

			agg, exists := categoryAggByKey[categoryKey]
			if !exists {
				agg = &categoryAgg{
					Key:         categoryKey,
					DisplayName: displayCategoryName(categoryKey),
					Amount:      money.Zero,
				}
				categoryAggByKey[categoryKey] = agg
			}

			agg.Amount = agg.Amount.Add(line.LineTotal)
			agg.ItemLineCount++
			totalSpent = totalSpent.Add(line.LineTotal)

			if !seenCategoriesInThisReceipt[categoryKey] {
				agg.ReceiptHitCount++
				seenCategoriesInThisReceipt[categoryKey] = true
			}
		}
	}

	rows := buildCategoryRows(categoryAggByKey, totalSpent, options.MaxRows)

	notes := []string{
		"Totals source: sum(receipt_lines.line_total) for item and fee lines of receipts whose purchase_date falls in this period.",
		"Category percentages are computed from that sum divided by the displayed total.",
	}

	report = monthlyReport{
		Title:        options.ReportTitle,
		Entity:       options.Entity,
		Year:         options.Year,
		Month:        options.Month,
		Timezone:     options.Timezone,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		GeneratedAt:  time.Now().In(location),
		ReceiptCount: len(receipts),
		TotalSpent:   totalSpent,
		Rows:         rows,
		Notes:        notes,
	}

	return report, e
}

/*
buildCategoryRows converts aggregations into sorted rows, assigns colors, and optionally groups overflow into "Other".
*/
func buildCategoryRows(categoryAggByKey map[string]*categoryAgg, totalSpent money.Amount, maxRows int) []categoryRow {
	rows := make([]categoryRow, 0, len(categoryAggByKey))

	for _, agg := range categoryAggByKey {
		rows = append(rows, categoryRow{
			Key:         agg.Key,
			DisplayName: agg.DisplayName,
			Amount:      agg.Amount,
			Percent:     percentOf(agg.Amount, totalSpent),
			BarPercent:  barPercentOf(agg.Amount, totalSpent),
		})
	}

	sort.Slice(rows, func(firstIndex int, secondIndex int) bool {
		return rows[firstIndex].Amount.GreaterThan(rows[secondIndex].Amount)
	})

	if maxRows < 3 {
		maxRows = 3
	}

	if len(rows) > maxRows {
		keep := rows[:maxRows-1]
		rest := rows[maxRows-1:]

		otherAmount := money.Zero
		for _, row := range rest {
			otherAmount = otherAmount.Add(row.Amount)
		}

		other := categoryRow{
			Key:         "other",
			DisplayName: "Other",
			Amount:      otherAmount,
			Percent:     percentOf(otherAmount, totalSpent),
			BarPercent:  barPercentOf(otherAmount, totalSpent),
		}

		rows = append(keep, other)
	}

	paletteColors := []string{
		"#2563EB", "#7C3AED", "#059669", "#DB2777", "#D97706",
		"#0EA5E9", "#65A30D", "#9333EA", "#F43F5E", "#14B8A6",
		"#4F46E5", "#B45309",
	}

	for index := range rows {
		rows[index].Color = paletteColors[index%len(paletteColors)]
	}

	return rows
}

func percentOf(amount, total money.Amount) float64 {
	if total.IsZero() {
		return 0.0
	}
	return amount.Div(total).InexactFloat64() * 100.0
}

func barPercentOf(amount, total money.Amount) int {
	percent := percentOf(amount, total)
	barPercent := int(math.Round(percent))
	if !amount.IsZero() && barPercent == 0 {
		barPercent = 1
	}
	if barPercent > 100 {
		barPercent = 100
	}
	return barPercent
}

/*
displayCategoryName maps a closed category key to a human-readable label.
*/
func displayCategoryName(categoryKey string) string {
	if name, exists := receipt.Categories[categoryKey]; exists {
		return name
	}

	parts := strings.Split(categoryKey, "_")
	for index, part := range parts {
		if part == "" {
			continue
		}
		parts[index] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

/*
renderHTML converts a monthlyReport into a single HTML string using inline CSS only.
*/
func renderHTML(report monthlyReport) string {
	var buffer bytes.Buffer

	totalFormatted := formatCAD(report.TotalSpent)
	monthName := report.Month.String()

	buffer.WriteString("<!doctype html>")
	buffer.WriteString("<html>")
	buffer.WriteString("<head>")
	buffer.WriteString(`<meta charset="utf-8">`)
	buffer.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	buffer.WriteString("</head>")

	bodyStyle := "margin:0;padding:0;background-color:#F3F4F6;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Inter,Arial,sans-serif;color:#111827;"
	buffer.WriteString(`<body style="` + bodyStyle + `">`)

	buffer.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border-collapse:collapse;background-color:#F3F4F6;">`)
	buffer.WriteString(`<tr>`)
	buffer.WriteString(`<td align="center" style="padding:24px;">`)

	buffer.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" width="680" style="border-collapse:separate;background-color:#F3F4F6;width:680px;max-width:680px;">`)
	buffer.WriteString(`<tr><td style="padding:0;">`)

	buffer.WriteString(`<div style="padding:8px 4px 18px 4px;">`)
	buffer.WriteString(`<div style="font-size:24px;font-weight:800;line-height:1.2;color:#111827;">` + html.EscapeString(report.Title) + `</div>`)
	buffer.WriteString(`<div style="margin-top:6px;font-size:13px;line-height:1.5;color:#6B7280;">`)
	buffer.WriteString(`Entity: <span style="font-weight:700;color:#111827;">` + html.EscapeString(string(report.Entity)) + `</span>`)
	buffer.WriteString(` &nbsp;•&nbsp; Period: <span style="font-weight:700;color:#111827;">` + html.EscapeString(monthName) + ` ` + strconv.Itoa(report.Year) + `</span>`)
	buffer.WriteString(` &nbsp;•&nbsp; Receipts: <span style="font-weight:700;color:#111827;">` + formatIntHuman(int64(report.ReceiptCount)) + `</span>`)
	buffer.WriteString(`</div>`)
	buffer.WriteString(`</div>`)

	buffer.WriteString(cardOpen())
	buffer.WriteString(`<div style="padding:18px 18px 6px 18px;">`)
	buffer.WriteString(`<div style="font-size:12px;letter-spacing:0.10em;text-transform:uppercase;color:#6B7280;">Total spent</div>`)
	buffer.WriteString(`<div style="margin-top:6px;font-size:34px;font-weight:900;line-height:1.1;color:#111827;">` + html.EscapeString(totalFormatted) + `</div>`)
	buffer.WriteString(`<div style="margin-top:8px;font-size:13px;line-height:1.5;color:#6B7280;">`)
	buffer.WriteString(`From <span style="font-weight:700;color:#111827;">` + report.PeriodStart.Format("2006-01-02") + `</span> to <span style="font-weight:700;color:#111827;">` + report.PeriodEnd.Format("2006-01-02") + `</span>`)
	buffer.WriteString(`</div>`)
	buffer.WriteString(`</div>`)

	buffer.WriteString(`<div style="padding:0 18px 18px 18px;">`)
	buffer.WriteString(`<div style="height:1px;background-color:#E5E7EB;width:100%;"></div>`)
	buffer.WriteString(`<div style="margin-top:14px;font-size:14px;font-weight:800;color:#111827;">Category breakdown</div>`)
	buffer.WriteString(`<div style="margin-top:4px;font-size:12px;line-height:1.5;color:#6B7280;">Percent of total spend for the month.</div>`)
	buffer.WriteString(`</div>`)

	buffer.WriteString(`<div style="padding:0 18px 18px 18px;">`)
	if report.ReceiptCount == 0 || len(report.Rows) == 0 {
		buffer.WriteString(`<div style="padding:14px;border:1px dashed #D1D5DB;border-radius:12px;background-color:#FAFAFA;color:#6B7280;font-size:13px;line-height:1.6;">`)
		buffer.WriteString(`No receipts found for this entity and month.`)
		buffer.WriteString(`</div>`)
	} else {
		buffer.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border-collapse:separate;border-spacing:0 10px;">`)
		for _, row := range report.Rows {
			buffer.WriteString(`<tr>`)
			buffer.WriteString(`<td style="padding:12px 12px 12px 12px;background-color:#FFFFFF;border:1px solid #E5E7EB;border-radius:12px;">`)

			buffer.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" border="0" width="100%" style="border-collapse:collapse;">`)
			buffer.WriteString(`<tr>`)

			buffer.WriteString(`<td style="vertical-align:top;padding-right:10px;">`)
			buffer.WriteString(`<div style="display:inline-block;width:10px;height:10px;border-radius:999px;background-color:` + row.Color + `;margin-right:8px;position:relative;top:1px;"></div>`)
			buffer.WriteString(`<span style="font-size:14px;font-weight:800;color:#111827;">` + html.EscapeString(row.DisplayName) + `</span>`)
			buffer.WriteString(`</td>`)

			buffer.WriteString(`<td align="right" style="vertical-align:top;">`)
			buffer.WriteString(`<div style="font-size:14px;font-weight:900;color:#111827;">` + html.EscapeString(formatCAD(row.Amount)) + `</div>`)
			buffer.WriteString(`<div style="margin-top:2px;font-size:12px;font-weight:800;color:#6B7280;">` + fmt.Sprintf("%.1f%%", row.Percent) + `</div>`)
			buffer.WriteString(`</td>`)

			buffer.WriteString(`</tr>`)

			buffer.WriteString(`<tr><td colspan="2" style="padding-top:10px;">`)
			buffer.WriteString(`<div style="width:100%;height:10px;border-radius:999px;background-color:#EEF2FF;overflow:hidden;border:1px solid #E5E7EB;">`)
			buffer.WriteString(`<div style="height:10px;width:` + strconv.Itoa(row.BarPercent) + `%;background-color:` + row.Color + `;border-radius:999px;"></div>`)
			buffer.WriteString(`</div>`)
			buffer.WriteString(`</td></tr>`)

			buffer.WriteString(`</table>`)

			buffer.WriteString(`</td>`)
			buffer.WriteString(`</tr>`)
		}
		buffer.WriteString(`</table>`)
	}
	buffer.WriteString(`</div>`)

	buffer.WriteString(`<div style="padding:0 0 18px 0;">`)
	buffer.WriteString(cardOpen())
	buffer.WriteString(`<div style="padding:16px 18px 16px 18px;">`)
	buffer.WriteString(`<div style="font-size:13px;font-weight:900;color:#111827;">Notes</div>`)
	buffer.WriteString(`<div style="margin-top:10px;font-size:12px;line-height:1.7;color:#6B7280;">`)
	for _, note := range report.Notes {
		buffer.WriteString(`• ` + html.EscapeString(note) + `<br>`)
	}
	buffer.WriteString(`</div>`)
	buffer.WriteString(`<div style="margin-top:12px;font-size:11px;color:#9CA3AF;">Generated ` + html.EscapeString(report.GeneratedAt.Format("2006-01-02 15:04:05")) + `</div>`)
	buffer.WriteString(`</div>`)
	buffer.WriteString(cardClose())
	buffer.WriteString(`</div>`)

	buffer.WriteString(`</td></tr>`)
	buffer.WriteString(`</table>`)

	buffer.WriteString(`</td>`)
	buffer.WriteString(`</tr>`)
	buffer.WriteString(`</table>`)

	buffer.WriteString(`</body>`)
	buffer.WriteString(`</html>`)

	return buffer.String()
}

func cardOpen() string {
	return `<div style="background-color:#FFFFFF;border:1px solid #E5E7EB;border-radius:16px;box-shadow:0 8px 24px rgba(17,24,39,0.06);overflow:hidden;">`
}

func cardClose() string {
	return `</div>`
}

/*
formatCAD formats a money.Amount as "$1,234.56 CAD".
*/
func formatCAD(amount money.Amount) string {
	negative := amount.IsNegative()
	absolute := amount.Abs()

	wholeAndCents := absolute.StringFixed(2)
	dotIndex := strings.Index(wholeAndCents, ".")
	whole, cents := wholeAndCents[:dotIndex], wholeAndCents[dotIndex+1:]

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s CAD", sign, groupThousands(whole, ","), cents)
}

/*
groupThousands groups digits in a base-10 string using the provided separator.
*/
func groupThousands(raw string, sep string) string {
	if len(raw) <= 3 {
		return raw
	}

	var builder strings.Builder
	firstGroupLen := len(raw) % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}

	builder.WriteString(raw[:firstGroupLen])

	for index := firstGroupLen; index < len(raw); index += 3 {
		builder.WriteString(sep)
		builder.WriteString(raw[index : index+3])
	}

	return builder.String()
}

/*
formatIntHuman formats a count with comma separators for readability.
*/
func formatIntHuman(value int64) string {
	raw := strconv.FormatInt(value, 10)
	return groupThousands(raw, ",")
}
