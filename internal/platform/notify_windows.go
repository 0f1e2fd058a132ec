//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "''")
	return "'" + escaped + "'"
}

// Notify shows a toast through the Windows notification center, driven by a
// PowerShell one-liner so no WinRT bindings are needed.
func Notify(title, body string, opts Options) error {
	icon := strings.TrimSpace(opts.IconPath)

	template := "ToastText02"
	imageLine := ""
	if icon != "" {
		template = "ToastImageAndText02"
		imageLine = fmt.Sprintf(
			`$image = $template.GetElementsByTagName("image").Item(0); `+
				`$image.SetAttribute("src", %s); `, psQuote(icon))
	}

	script := fmt.Sprintf(
		`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `+
			`$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); `+
			`$texts = $template.GetElementsByTagName("text"); `+
			`$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null; `+
			`$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null; `+
			`%s`+
			`$toast = [Windows.UI.Notifications.ToastNotification]::new($template); `+
			`$notifier = [Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s); `+
			`$notifier.Show($toast);`,
		template, psQuote(title), psQuote(body), imageLine, psQuote("Squidpad"))

	return exec.Command("powershell.exe", "-NoProfile", "-Command", script).Run()
}
