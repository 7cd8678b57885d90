package cli

import (
	"fmt"

	"github.com/diillson/anthropic-cost-report-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
          ____          _     ____                       _
         / ___|___  ___| |_  |  _ \ ___ _ __   ___  _ __| |_
        | |   / _ \/ __| __| | |_) / _ \ '_ \ / _ \| '__| __|
        | |__| (_) \__ \ |_  |  _ <  __/ |_) | (_) | |  | |_
         \____\___/|___/\__| |_| \_\___| .__/ \___/|_|   \__|
                                       |_|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Anthropic Cost Report CLI (v%s)", formattedVersion)))
}
