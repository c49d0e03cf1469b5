package service

import (
	"fmt"
	"strings"

	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
)

func missingReviewsEmailTemplate(name string, missing []model.MissingReview, appURL, appName string) (string, string) {
	overdue := 0
	var lines strings.Builder
	for _, m := range missing {
		if m.State == period.SlotOverdue {
			overdue++
		}
		fmt.Fprintf(&lines, "- %s / %s: %s (%s)\n", m.ObjectiveTitle, m.KeyResultTitle, m.Period, strings.ReplaceAll(string(m.State), "_", " "))
	}

	subject := fmt.Sprintf("%d progress updates waiting in %s", len(missing), appName)
	if overdue > 0 {
		subject = fmt.Sprintf("%d overdue progress updates in %s", overdue, appName)
	}

	body := fmt.Sprintf(`Hi %s,

These key results still need a monthly progress update:

%s
Submit them here:
%s/api/coverage/missing

Best,
The %s Team`, name, lines.String(), appURL, appName)

	return subject, body
}
