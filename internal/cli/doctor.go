package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/nerdminer/internal/config"
	"github.com/rileyhilliard/nerdminer/internal/doctor"
	"github.com/rileyhilliard/nerdminer/internal/errors"
	"github.com/rileyhilliard/nerdminer/internal/network"
	"github.com/rileyhilliard/nerdminer/internal/terminal"
	"github.com/spf13/cobra"
)

const (
	symbolPass = "●"
	symbolFail = "✗"
)

var doctorJSON bool

// doctorCmd runs environment diagnostics
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, terminal and network endpoints",
	Long: `Run diagnostics for the config file, the terminal, the public price
and chain endpoints and the status server address.

Network failures are warnings because the dashboard keeps running with
placeholder values. Config and status address problems are failures and
make the command exit non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.OutOrStdout())
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for the doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

func doctorCommand(w io.Writer) error {
	// A broken config still gets diagnosed; the remaining checks fall back to
	// defaults and environment overrides.
	cfg, err := loadConfig()
	if err != nil {
		if !errors.IsCode(err, errors.ErrConfig) {
			return err
		}
		if cfg, err = config.FromEnv(); err != nil {
			cfg = config.DefaultConfig()
		}
		applyFlags(cfg)
	}

	checks := collectChecks(cfg, os.Stdin, os.Stdout)
	results := doctor.RunAllParallel(checks)

	if doctorJSON {
		err = outputDoctorJSON(w, checks, results)
	} else {
		err = outputDoctorText(w, cfg.Display.Color, checks, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		counts := doctor.CountByStatus(results)
		return errors.New(errors.ErrDoctor,
			fmt.Sprintf("%d check%s failed", counts[doctor.StatusFail], pluralSuffix(counts[doctor.StatusFail])),
			"Fix the failures above and run nerdminer doctor again")
	}
	return nil
}

func collectChecks(cfg *config.Config, stdin, stdout *os.File) []doctor.Check {
	source := network.NewHTTPSource(cfg.Network)
	return []doctor.Check{
		&doctor.ConfigFileCheck{ConfigPath: cfgFile},
		&doctor.ConfigValidCheck{ConfigPath: cfgFile},
		&doctor.TTYCheck{In: stdin, Out: stdout},
		&doctor.ColorCheck{Profile: terminal.Profile(stdout, cfg.Display.Color)},
		&doctor.PriceCheck{Source: source, Timeout: cfg.Network.Timeout},
		&doctor.ChainCheck{Source: source, Timeout: cfg.Network.Timeout},
		&doctor.StatusAddrCheck{Addr: cfg.Status.Addr},
	}
}

func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := doctor.GroupByCategory(checks)

	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(grouped)),
	}
	for _, cat := range doctor.CategoryOrder {
		indices, ok := grouped[cat]
		if !ok {
			continue
		}
		co := CategoryOutput{Name: cat, Results: make([]doctor.CheckResult, 0, len(indices))}
		for _, idx := range indices {
			co.Results = append(co.Results, results[idx])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}

	data, err := sonic.ConfigStd.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func outputDoctorText(w io.Writer, color string, checks []doctor.Check, results []doctor.CheckResult) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(terminal.Profile(w, color))

	successStyle := r.NewStyle().Foreground(terminal.ColorHealthy)
	errorStyle := r.NewStyle().Foreground(terminal.ColorCritical)
	warnStyle := r.NewStyle().Foreground(terminal.ColorWarning)
	mutedStyle := r.NewStyle().Foreground(terminal.ColorMuted)
	headerStyle := r.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("NerdMiner Diagnostic Report"))
	b.WriteString("\n\n")

	grouped := doctor.GroupByCategory(checks)
	for _, category := range doctor.CategoryOrder {
		indices, ok := grouped[category]
		if !ok || len(indices) == 0 {
			continue
		}

		b.WriteString(headerStyle.Render(category))
		b.WriteString("\n")

		for _, idx := range indices {
			result := results[idx]

			symbol, style := symbolPass, successStyle
			switch result.Status {
			case doctor.StatusWarn:
				style = warnStyle
			case doctor.StatusFail:
				symbol, style = symbolFail, errorStyle
			}

			fmt.Fprintf(&b, "  %s %s\n", style.Render(symbol), result.Message)
			if result.Suggestion != "" && result.Status != doctor.StatusPass {
				for _, line := range strings.Split(result.Suggestion, "\n") {
					fmt.Fprintf(&b, "    %s\n", mutedStyle.Render(line))
				}
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("━", 60))
	b.WriteString("\n\n")

	if doctor.HasIssues(results) {
		fmt.Fprintf(&b, "%s %s\n", errorStyle.Render(symbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(&b, "%s %s\n", successStyle.Render(symbolPass), doctor.Summary(results))
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// pluralSuffix returns "s" if n != 1.
func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
