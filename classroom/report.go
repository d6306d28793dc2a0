package classroom

import (
	"fmt"
	"io"
)

// MissingStudents returns roster members with no submission, in roster
// order. Computed as a true set difference, so multiple submissions by
// one student never mask another student's absence.
func MissingStudents(subs []Submission, roster Roster) []Student {
	submitted := make(map[string]bool, len(subs))
	for _, sub := range subs {
		submitted[sub.Author] = true
	}

	var missing []Student
	for _, student := range roster {
		if !submitted[student.Username] {
			missing = append(missing, student)
		}
	}
	return missing
}

// ReportMissing prints the missing-submissions line, or nothing if every
// roster member has submitted.
func ReportMissing(w io.Writer, subs []Submission, roster Roster) {
	missing := MissingStudents(subs, roster)
	if len(missing) == 0 {
		return
	}

	fmt.Fprint(w, "Missing submissions from: ")
	for _, student := range missing {
		fmt.Fprintf(w, "%s ", student.Name)
	}
	fmt.Fprintln(w)
}
