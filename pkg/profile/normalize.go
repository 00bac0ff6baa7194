package profile

import (
	"errors"
	"strings"

	"github.com/dd0wney/talentgraph/pkg/network"
)

// Normalization limits.
const (
	MaxSkills    = 15
	MaxCompanies = 8
	JobsCategory = "jobs"
)

var (
	// ErrNoIdentifier means the search entry has neither a username nor an id.
	ErrNoIdentifier = errors.New("profile has no identifier")
	// ErrNoPerson means the genome lacks a person section.
	ErrNoPerson = errors.New("genome has no person")
)

// IsSkip reports whether err means the profile should be left out of the
// batch rather than failing it.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoIdentifier) || errors.Is(err, ErrNoPerson)
}

// Normalize builds a canonical node from a search entry and its genome.
func Normalize(summary Summary, genome *Genome) (network.Node, error) {
	id := strings.TrimSpace(summary.Identifier())
	if id == "" {
		return network.Node{}, ErrNoIdentifier
	}
	if genome == nil || genome.Person == nil {
		return network.Node{}, ErrNoPerson
	}
	person := genome.Person

	node := network.Node{
		ID:        id,
		Username:  id,
		Name:      firstNonEmpty(person.Name.String(), summary.Name.String(), id),
		Picture:   firstNonEmpty(person.Picture.String(), summary.Picture.String()),
		Skills:    skillsOf(genome.Strengths),
		Companies: companiesOf(genome.Experiences),
		Location:  network.NotSpecified,
	}
	if person.Location != nil && person.Location.Name != "" {
		node.Location = person.Location.Name.String()
	}
	return node, nil
}

func skillsOf(strengths List[Strength]) []string {
	if len(strengths) > MaxSkills {
		strengths = strengths[:MaxSkills]
	}
	skills := make([]string, 0, len(strengths))
	for _, s := range strengths {
		if s.Name != "" {
			skills = append(skills, s.Name.String())
		}
	}
	return skills
}

// companiesOf takes the first organization of the first MaxCompanies jobs.
// Jobs without a named organization still count toward the limit.
func companiesOf(experiences List[Experience]) []string {
	companies := make([]string, 0, MaxCompanies)
	jobs := 0
	for _, e := range experiences {
		if e.Category != JobsCategory {
			continue
		}
		if jobs == MaxCompanies {
			break
		}
		jobs++
		if len(e.Organizations) > 0 && e.Organizations[0].Name != "" {
			companies = append(companies, e.Organizations[0].Name.String())
		}
	}
	return companies
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
