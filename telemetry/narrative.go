package telemetry

import (
	"fmt"
	"strings"
)

// Narrative copy for the run-end report. Every style is a flavor of
// success; there is no losing ending.
var runNarratives = map[Style]string{
	StyleLogicDominant: "You thought your way through. Every locked door " +
		"became a puzzle, every puzzle a proof. The quiet half of you did " +
		"the talking this time, and it had plenty to say.",
	StyleEmotionDominant: "You felt your way through. Leaps taken before " +
		"looking, enemies met head-on, walls cleared on instinct. The loud " +
		"half of you carried the day, and it carried it well.",
	StyleBalanced: "You walked the line. Head and heart took turns at the " +
		"wheel, and neither ever had to shout. Few people finish this way; " +
		"fewer still do it on purpose.",
}

// RunNarrative returns the descriptive copy for a run-level style.
func RunNarrative(s Style) string {
	if text, ok := runNarratives[s]; ok {
		return text
	}
	return runNarratives[StyleBalanced]
}

// RunReport renders the full end-of-run report: one line per completed
// level followed by the run classification and its narrative.
func (e *Engine) RunReport() string {
	var b strings.Builder
	b.WriteString("run complete\n\n")
	for _, r := range e.History() {
		fmt.Fprintf(&b, "level %d: logic %d / emotion %d (%d switches): %s\n",
			r.LevelIndex+1, r.LogicScore, r.EmotionScore, r.Switches, r.Style)
	}
	logic, emotion, switches := e.RunTotals()
	fmt.Fprintf(&b, "\ntotal: logic %d / emotion %d (%d switches)\n", logic, emotion, switches)
	fmt.Fprintf(&b, "style: %s\n\n", e.RunStyle())
	b.WriteString(RunNarrative(e.RunStyle()))
	return b.String()
}
