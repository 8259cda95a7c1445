package appointment

import "strings"

type Mode string

const (
	ModeOnline   Mode = "online"
	ModeInPerson Mode = "in-person"
)

// ModeDetails is how an appointment or meeting takes place. URL and
// Password only exist for online sessions.
type ModeDetails struct {
	Mode     Mode
	URL      string
	Password string
}

// Normalize validates d and drops the online-only fields from in-person
// details. An empty mode means no mode was chosen.
func (d ModeDetails) Normalize(verr *ValidationError, prefix string) ModeDetails {
	d.URL = strings.TrimSpace(d.URL)
	d.Password = strings.TrimSpace(d.Password)

	switch d.Mode {
	case "":
		return ModeDetails{}
	case ModeInPerson:
		return ModeDetails{Mode: ModeInPerson}
	case ModeOnline:
		if d.URL == "" {
			verr.Add(prefix+"_url", "is required for online sessions")
		}
		return d
	default:
		verr.Add(prefix+"_mode", "must be online or in-person")
		return ModeDetails{}
	}
}
