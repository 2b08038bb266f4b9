package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
)

// MemoryPortfolioRepo keeps portfolios for the lifetime of the process.
// Nothing survives a restart and nothing is shared between instances.
type MemoryPortfolioRepo struct {
	mu             sync.RWMutex
	profiles       map[uuid.UUID]portfolio.Profile
	projects       map[uuid.UUID][]portfolio.Project
	experience     map[uuid.UUID][]portfolio.Experience
	education      map[uuid.UUID][]portfolio.Education
	skills         map[uuid.UUID][]portfolio.Skill
	certifications map[uuid.UUID][]portfolio.Certification
	now            func() time.Time
}

func NewMemoryPortfolioRepo() *MemoryPortfolioRepo {
	return &MemoryPortfolioRepo{
		profiles:       make(map[uuid.UUID]portfolio.Profile),
		projects:       make(map[uuid.UUID][]portfolio.Project),
		experience:     make(map[uuid.UUID][]portfolio.Experience),
		education:      make(map[uuid.UUID][]portfolio.Education),
		skills:         make(map[uuid.UUID][]portfolio.Skill),
		certifications: make(map[uuid.UUID][]portfolio.Certification),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Save stores full arrays per owner. Children get fresh ids and keep the
// position they were submitted with. Email uniqueness is not enforced.
func (r *MemoryPortfolioRepo) Save(ctx context.Context, p *portfolio.Portfolio) error {
	if err := ctx.Err(); err != nil {
		return apperror.NewInternal("memory save cancelled", err)
	}

	ownerID := p.OwnerID()
	now := r.now()

	profile := p.Profile
	profile.CreatedAt = now
	profile.UpdatedAt = now

	projects := make([]portfolio.Project, len(p.Projects))
	for i, pr := range p.Projects {
		pr.ID, pr.OwnerID, pr.Position, pr.CreatedAt = uuid.New(), ownerID, i, now
		pr.Technologies = cloneStrings(pr.Technologies)
		pr.Achievements = cloneStrings(pr.Achievements)
		projects[i] = pr
	}
	experience := make([]portfolio.Experience, len(p.Experience))
	for i, ex := range p.Experience {
		ex.ID, ex.OwnerID, ex.Position, ex.CreatedAt = uuid.New(), ownerID, i, now
		ex.Responsibilities = cloneStrings(ex.Responsibilities)
		experience[i] = ex
	}
	education := make([]portfolio.Education, len(p.Education))
	for i, ed := range p.Education {
		ed.ID, ed.OwnerID, ed.Position, ed.CreatedAt = uuid.New(), ownerID, i, now
		education[i] = ed
	}
	skills := make([]portfolio.Skill, len(p.Skills))
	for i, s := range p.Skills {
		s.ID, s.OwnerID, s.CreatedAt = uuid.New(), ownerID, now
		skills[i] = s
	}
	certifications := make([]portfolio.Certification, len(p.Certifications))
	for i, c := range p.Certifications {
		c.ID, c.OwnerID, c.Position, c.CreatedAt = uuid.New(), ownerID, i, now
		certifications[i] = c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[ownerID] = profile
	r.projects[ownerID] = projects
	r.experience[ownerID] = experience
	r.education[ownerID] = education
	r.skills[ownerID] = skills
	r.certifications[ownerID] = certifications
	return nil
}

func (r *MemoryPortfolioRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[ownerID]
	if !ok {
		return nil, apperror.NewNotFound("portfolio", ownerID.String())
	}

	return &portfolio.Portfolio{
		Profile:        profile,
		Projects:       cloneProjects(r.projects[ownerID]),
		Experience:     cloneExperience(r.experience[ownerID]),
		Education:      cloneSlice(r.education[ownerID]),
		Skills:         cloneSlice(r.skills[ownerID]),
		Certifications: cloneSlice(r.certifications[ownerID]),
	}, nil
}

// Count returns the number of stored portfolios.
func (r *MemoryPortfolioRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return cloneSlice(in)
}

func cloneProjects(in []portfolio.Project) []portfolio.Project {
	out := cloneSlice(in)
	for i := range out {
		out[i].Technologies = cloneStrings(out[i].Technologies)
		out[i].Achievements = cloneStrings(out[i].Achievements)
	}
	return out
}

func cloneExperience(in []portfolio.Experience) []portfolio.Experience {
	out := cloneSlice(in)
	for i := range out {
		out[i].Responsibilities = cloneStrings(out[i].Responsibilities)
	}
	return out
}
