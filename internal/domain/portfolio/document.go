package portfolio

import (
	"sort"

	"github.com/google/uuid"
)

// BuildSkills flattens the three comma-separated category strings into skill
// rows. Positions are contiguous across categories in display order.
func BuildSkills(ownerID uuid.UUID, languages, technologies, styling string) []Skill {
	raw := map[SkillCategory]string{
		CategoryLanguages:    languages,
		CategoryTechnologies: technologies,
		CategoryStyling:      styling,
	}

	skills := make([]Skill, 0)
	position := 0
	for _, category := range SkillCategories {
		for _, name := range SplitCommaList(raw[category]) {
			skills = append(skills, Skill{
				OwnerID:  ownerID,
				Category: category,
				Name:     name,
				Position: position,
			})
			position++
		}
	}
	return skills
}

// GroupSkills groups flat skill rows by category, ordered by position.
// Rows with an unknown category are ignored.
func GroupSkills(skills []Skill) SkillGroups {
	sorted := make([]Skill, len(skills))
	copy(sorted, skills)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	groups := SkillGroups{
		Languages:    []string{},
		Technologies: []string{},
		Styling:      []string{},
	}
	for _, s := range sorted {
		switch s.Category {
		case CategoryLanguages:
			groups.Languages = append(groups.Languages, s.Name)
		case CategoryTechnologies:
			groups.Technologies = append(groups.Technologies, s.Name)
		case CategoryStyling:
			groups.Styling = append(groups.Styling, s.Name)
		}
	}
	return groups
}

// NewDocument assembles the read aggregate. Nil collections become empty.
func NewDocument(p *Portfolio) *Document {
	doc := &Document{
		User:           p.Profile,
		Projects:       p.Projects,
		Experience:     p.Experience,
		Education:      p.Education,
		Skills:         GroupSkills(p.Skills),
		Certifications: p.Certifications,
	}
	if doc.Projects == nil {
		doc.Projects = []Project{}
	}
	if doc.Experience == nil {
		doc.Experience = []Experience{}
	}
	if doc.Education == nil {
		doc.Education = []Education{}
	}
	if doc.Certifications == nil {
		doc.Certifications = []Certification{}
	}
	return doc
}
