package service

import (
	"fmt"
	"strings"

	"github.com/mindtrack/mindtrack/internal/model"
)

func achievementEmailTemplate(name string, achievements []*model.Achievement, appURL, appName string) (string, string) {
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("You unlocked %d achievements on %s", len(achievements), appName)
	if len(achievements) == 1 {
		subject = fmt.Sprintf("Achievement unlocked: %s", achievements[0].Title)
	}

	var list strings.Builder
	for _, a := range achievements {
		fmt.Fprintf(&list, "%s %s: %s\n", a.IconEmoji, a.Title, a.Description)
	}

	body := fmt.Sprintf(`Hi %s,

Nice work keeping up with your check-ins:

%s
See all of your progress: %s

Best,
The %s Team`, name, list.String(), appURL, appName)

	return subject, body
}

func exportReadyEmailTemplate(name, downloadURL, appName string) (string, string) {
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("Your %s data export is ready", appName)
	body := fmt.Sprintf(`Hi %s,

Your data export is ready to download:
%s

This link expires soon. You can request a new export at any time.

If you didn't request this, you can safely ignore this email.

Best,
The %s Team`, name, downloadURL, appName)

	return subject, body
}
