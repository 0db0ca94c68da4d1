package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/guerrinflorian/ConcepteurBiere/internal/calc"
	"github.com/guerrinflorian/ConcepteurBiere/internal/hygiene"
	"github.com/guerrinflorian/ConcepteurBiere/internal/procedure"
	"github.com/guerrinflorian/ConcepteurBiere/internal/rules"
	"github.com/guerrinflorian/ConcepteurBiere/internal/validate"
	"github.com/guerrinflorian/ConcepteurBiere/internal/water"
)

const labelWidth = 18

func (th theme) row(label, value string) string {
	l := fmt.Sprintf("%-*s", labelWidth, label+":")
	return th.label.Render(l) + " " + th.value.Render(value)
}

func (th theme) levelIcon(l rules.Level) string {
	switch l {
	case rules.LevelDanger:
		return th.danger.Render(IconDanger)
	case rules.LevelWarn:
		return th.warn.Render(IconWarn)
	default:
		return th.info.Render(IconInfo)
	}
}

func (th theme) levelStyle(l rules.Level) lipgloss.Style {
	switch l {
	case rules.LevelDanger:
		return th.danger
	case rules.LevelWarn:
		return th.warn
	default:
		return th.info
	}
}

// RenderMetrics renders the derived metrics of a recipe followed by the
// style comparison when styleChecks is not empty.
func RenderMetrics(name string, v calc.Values, styleChecks []calc.RangeCheck, opts Options) string {
	th := newTheme(opts)
	var b strings.Builder

	title := "Recipe metrics"
	if name != "" {
		title += ": " + name
	}
	b.WriteString(th.title.Render(title))
	b.WriteString("\n")

	b.WriteString(th.row("OG", fmt.Sprintf("%s (%s °P)", Number(v.OG, 3), Number(v.OGPlato, 1))) + "\n")
	b.WriteString(th.row("FG", Number(v.FG, 3)) + "\n")
	b.WriteString(th.row("ABV", Number(v.ABV, 1)+" %") + "\n")
	b.WriteString(th.row("Bitterness", fmt.Sprintf("%s IBU (%s)", Number(v.IBU, 0), calc.BitternessLabel(v.IBU))) + "\n")

	color := fmt.Sprintf("%s EBC (%s)", Number(v.EBC, 0), v.ColorLabel)
	if th.styled {
		sw := calc.ColorSwatch(v.EBC).Hex()
		color = lipgloss.NewStyle().Foreground(lipgloss.Color(sw)).Render(IconSwatch) + " " + color
	}
	b.WriteString(th.row("Color", color) + "\n")
	b.WriteString(th.row("Carbonation", Number(v.CO2Volumes, 2)+" vol CO2") + "\n")
	if v.TotalSugar > 0 {
		b.WriteString(th.row("Priming sugar", Number(v.TotalSugar, 0)+" g") + "\n")
	}

	if len(styleChecks) > 0 {
		b.WriteString("\n")
		b.WriteString(th.header.Render("Style comparison") + "\n")
		for _, c := range styleChecks {
			mark := th.ok.Render(IconOK)
			if !c.InRange {
				mark = th.danger.Render(IconOut)
			}
			b.WriteString(fmt.Sprintf("  %s %-4s %s  (%s to %s)\n",
				mark,
				strings.ToUpper(c.Metric),
				th.value.Render(Number(c.Value, c.Decimals)),
				Number(c.Min, c.Decimals),
				Number(c.Max, c.Decimals),
			))
		}
	}
	return b.String()
}

// RenderWaterPlan renders the water volumes. Expert mode adds the loss
// breakdown.
func RenderWaterPlan(p water.Plan, opts Options) string {
	th := newTheme(opts)
	var b strings.Builder
	liters := func(v float64) string { return Number(v, 1) + " L" }

	b.WriteString(th.title.Render("Water plan") + "\n")
	b.WriteString(th.row("Method", string(p.Method)) + "\n")
	if p.MashWaterL > 0 {
		b.WriteString(th.row("Mash water", liters(p.MashWaterL)) + "\n")
		b.WriteString(th.row("Sparge water", liters(p.SpargeWaterL)) + "\n")
	}
	b.WriteString(th.row("Total water", liters(p.TotalWaterL)) + "\n")
	b.WriteString(th.row("Pre-boil volume", liters(p.PreBoilVolumeL)) + "\n")
	b.WriteString(th.row("Post-boil volume", liters(p.PostBoilVolumeL)) + "\n")

	if opts.Expert {
		b.WriteString("\n" + th.header.Render("Losses") + "\n")
		b.WriteString(th.row("Grain absorption", liters(p.GrainAbsorptionL)) + "\n")
		b.WriteString(th.row("Boil-off", liters(p.BoilOffL)) + "\n")
		b.WriteString(th.row("Trub", liters(p.TrubLossL)) + "\n")
		b.WriteString(th.row("Fixed", liters(p.FixedLossesL)) + "\n")
		b.WriteString(th.row("Total losses", liters(p.LossesL)) + "\n")
	}
	return b.String()
}

// RenderChecks renders consistency checks. An empty list renders a single
// all-clear line.
func RenderChecks(checks []rules.Check, opts Options) string {
	th := newTheme(opts)
	var b strings.Builder
	b.WriteString(th.title.Render("Consistency checks") + "\n")
	if len(checks) == 0 {
		b.WriteString(th.ok.Render(IconOK+" No consistency issues found") + "\n")
		return b.String()
	}
	for _, c := range checks {
		b.WriteString(fmt.Sprintf("%s %s %s\n", th.levelIcon(c.Level), th.levelStyle(c.Level).Render(c.Title), th.muted.Render("("+c.ID+")")))
		b.WriteString("   " + c.Message + "\n")
	}
	return b.String()
}

// RenderRisks renders the active risks with their explanation and fixes.
// hidden is the number of dismissed risks left out.
func RenderRisks(risks []rules.Risk, hidden int, opts Options) string {
	th := newTheme(opts)
	var b strings.Builder
	b.WriteString(th.title.Render("Brewing risks") + "\n")
	if len(risks) == 0 {
		b.WriteString(th.ok.Render(IconOK+" No active risks") + "\n")
	}
	for i, r := range risks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", th.levelIcon(r.Level), th.levelStyle(r.Level).Render(r.Title), th.muted.Render("("+r.ID+")")))
		b.WriteString("   " + r.Message + "\n")
		if r.WhyItMatters != "" {
			b.WriteString("   " + th.label.Render("Why it matters: ") + r.WhyItMatters + "\n")
		}
		if len(r.HowToFix) > 0 {
			b.WriteString("   " + th.label.Render("How to fix:") + "\n")
			for _, fix := range r.HowToFix {
				b.WriteString("     " + IconBullet + " " + fix + "\n")
			}
		}
	}
	if hidden > 0 {
		b.WriteString(th.muted.Render(fmt.Sprintf("\n%d dismissed risk(s) hidden", hidden)) + "\n")
	}
	return b.String()
}

// RenderStep renders one procedure step. Tips are shown to beginners only.
func RenderStep(index int, s procedure.Step, opts Options) string {
	th := newTheme(opts)
	var b strings.Builder

	head := fmt.Sprintf("%d. %s", index+1, s.Title)
	if s.DurationMin != nil {
		head += th.muted.Render(" (" + Duration(*s.DurationMin) + ")")
	}
	b.WriteString(th.header.Render(head) + "\n")

	for _, l := range s.Details {
		switch l.Kind {
		case procedure.KindHeading:
			b.WriteString(th.heading.Render(l.Text) + "\n")
		case procedure.KindSpacer:
			b.WriteString("\n")
		default:
			b.WriteString("  " + IconBullet + " " + l.Text + "\n")
		}
	}
	for _, w := range s.Warnings {
		b.WriteString("  " + th.warn.Render(IconWarn+" "+w) + "\n")
	}
	if !opts.Expert {
		for _, tip := range s.Tips {
			b.WriteString("  " + th.info.Render(IconInfo+" "+tip) + "\n")
		}
	}
	return b.String()
}

// RenderProcedure renders every step and the total duration.
func RenderProcedure(steps []procedure.Step, opts Options) string {
	th := newTheme(opts)
	var b strings.Builder
	b.WriteString(th.title.Render("Brew day procedure") + "\n")
	for i, s := range steps {
		b.WriteString("\n")
		b.WriteString(RenderStep(i, s, opts))
	}
	b.WriteString("\n" + th.row("Total duration", Duration(procedure.TotalDurationMin(steps))) + "\n")
	return b.String()
}

// RenderValidation renders the per-step validation results.
func RenderValidation(results []validate.Result, opts Options) string {
	th := newTheme(opts)
	var b strings.Builder
	b.WriteString(th.title.Render("Recipe validation") + "\n")
	for _, r := range results {
		if r.Valid {
			b.WriteString(fmt.Sprintf("%s %s\n", th.ok.Render(IconOK), r.Name))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s\n", th.danger.Render(IconOut), th.danger.Render(r.Name)))
		for _, e := range r.Errors {
			b.WriteString(fmt.Sprintf("   %s %s: %s\n", IconBullet, th.label.Render(e.Field), e.Message))
		}
	}
	return b.String()
}

// RenderHygiene renders the applicable checklist sections with their
// checked state and overall progress.
func RenderHygiene(sections []hygiene.Section, checked map[string]bool, opts Options) string {
	th := newTheme(opts)
	var b strings.Builder
	b.WriteString(th.title.Render("Hygiene checklist") + "\n")
	for _, sec := range sections {
		b.WriteString("\n" + th.header.Render(sec.Title) + "\n")
		if sec.Intro != "" && !opts.Expert {
			b.WriteString(th.muted.Render(sec.Intro) + "\n")
		}
		for _, it := range sec.Items {
			box := IconOpen
			label := it.Label
			if checked[it.ID] {
				box = th.ok.Render(IconChecked)
			} else if it.Severity == hygiene.SeverityWarn {
				label = th.warn.Render(label)
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n", box, label, th.muted.Render("("+it.ID+")")))
			if !opts.Expert && it.How != "" {
				b.WriteString("      " + it.How + "\n")
			}
		}
	}
	done, total := hygiene.Progress(hygiene.Items(sections), checked)
	b.WriteString("\n" + th.row("Progress", fmt.Sprintf("%d/%d", done, total)) + "\n")
	return b.String()
}
