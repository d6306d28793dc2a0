package classroom

// Student is a tracked member of the class roster.
type Student struct {
	Name     string `yaml:"name" json:"name"`
	Username string `yaml:"username" json:"username"`
}

// Roster is the full set of tracked students, in instructor-defined order.
// Students are identified by Username.
type Roster []Student

// Lookup returns a username to display-name map, built once per run and
// read-only afterwards.
func (r Roster) Lookup() map[string]string {
	names := make(map[string]string, len(r))
	for _, student := range r {
		names[student.Username] = student.Name
	}
	return names
}
