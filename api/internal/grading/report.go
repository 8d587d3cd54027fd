package grading

import (
	"sort"
	"strings"
)

const (
	allCorrectMarker  = "✅ All correct!"
	restCorrectMarker = "✅ The rest are correct."
)

// Render turns a validated report into the reply text. Section and question
// ids are emitted in sorted order so identical reports always render to
// identical bytes.
func Render(r Report) string {
	sectionIDs := make([]string, 0, len(r.Sections))
	for id := range r.Sections {
		sectionIDs = append(sectionIDs, id)
	}
	sort.Strings(sectionIDs)

	var b strings.Builder
	for i, sid := range sectionIDs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		sec := r.Sections[sid]
		b.WriteString("Section " + sid + ":")
		if sec.AllCorrect {
			b.WriteString("\n" + allCorrectMarker)
			continue
		}

		qids := make([]string, 0, len(sec.Corrections))
		for q := range sec.Corrections {
			qids = append(qids, q)
		}
		sort.Strings(qids)
		for _, q := range qids {
			b.WriteString("\n" + q + ". " + sec.Corrections[q])
		}
		b.WriteString("\n" + restCorrectMarker)
	}
	return strings.TrimRight(b.String(), " \t\n")
}
