package extract

import (
	"strings"

	"github.com/tallydesk/docintake/internal/entity"
	"github.com/tallydesk/docintake/internal/patterns"
)

// Payment confidence depends on whether a concrete amount was found.
const (
	confPaymentAmount  = 0.80
	confPaymentPartial = 0.60
)

// PaymentSchedules scans for payment-flavoured lines and emits a schedule
// entry whenever the line carries an amount or a percentage. Lines with
// neither are ignored.
func PaymentSchedules(text string) []entity.PaymentSchedule {
	var schedules []entity.PaymentSchedule
	for _, line := range strings.Split(text, "\n") {
		if !patterns.PaymentLine.MatchString(line) {
			continue
		}

		var amount float64
		hasAmount := false
		if m := patterns.CurrencyAmount.FindStringSubmatch(line); m != nil {
			if v, ok := patterns.ParseAmount(m[1]); ok {
				amount = v
				hasAmount = true
			}
		}

		var percentage *float64
		if m := patterns.Percentage.FindStringSubmatch(line); m != nil {
			if v, ok := patterns.ParseAmount(m[1]); ok && v <= 100 {
				percentage = &v
			}
		}

		if !hasAmount && percentage == nil {
			continue
		}

		confidence := confPaymentPartial
		if hasAmount {
			confidence = confPaymentAmount
		}

		due, _ := patterns.FindDate(line)
		schedules = append(schedules, entity.PaymentSchedule{
			Description: strings.TrimSpace(line),
			Amount:      amount,
			DueDate:     due,
			Percentage:  percentage,
			IsMilestone: patterns.MilestoneSignal.MatchString(line),
			Confidence:  confidence,
		})
	}
	return schedules
}
