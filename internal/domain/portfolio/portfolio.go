package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SkillCategory string

const (
	CategoryLanguages    SkillCategory = "languages"
	CategoryTechnologies SkillCategory = "technologies"
	CategoryStyling      SkillCategory = "styling"
)

// SkillCategories lists the categories in their fixed display order.
var SkillCategories = []SkillCategory{CategoryLanguages, CategoryTechnologies, CategoryStyling}

func (c SkillCategory) Valid() bool {
	switch c {
	case CategoryLanguages, CategoryTechnologies, CategoryStyling:
		return true
	}
	return false
}

// Profile is the owner record. Its ID is the portfolio owner identifier.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio"`
	Phone     *string   `json:"phone"`
	Location  *string   `json:"location"`
	Website   *string   `json:"website"`
	GitHub    *string   `json:"github"`
	LinkedIn  *string   `json:"linkedin"`
	Instagram *string   `json:"instagram"`
	ResumeURL *string   `json:"resume_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Project struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"user_id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Duration     string    `json:"duration"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Achievements []string  `json:"achievements"`
	Position     int       `json:"order_index"`
	CreatedAt    time.Time `json:"created_at"`
}

type Experience struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"user_id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Duration         string    `json:"duration"`
	Responsibilities []string  `json:"responsibilities"`
	Position         int       `json:"order_index"`
	CreatedAt        time.Time `json:"created_at"`
}

type Education struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"user_id"`
	Degree      string    `json:"degree"`
	Institution string    `json:"institution"`
	Duration    string    `json:"duration"`
	Grade       *string   `json:"grade"`
	Position    int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

type Skill struct {
	ID        uuid.UUID     `json:"id"`
	OwnerID   uuid.UUID     `json:"user_id"`
	Category  SkillCategory `json:"category"`
	Name      string        `json:"name"`
	Position  int           `json:"order_index"`
	CreatedAt time.Time     `json:"created_at"`
}

type Certification struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"user_id"`
	Title         string    `json:"title"`
	Issuer        string    `json:"issuer"`
	Date          string    `json:"date"`
	CredentialURL *string   `json:"credential_url"`
	Position      int       `json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
}

// Portfolio is the full record graph of one owner, as written and as stored.
type Portfolio struct {
	Profile        Profile
	Projects       []Project
	Experience     []Experience
	Education      []Education
	Skills         []Skill
	Certifications []Certification
}

// OwnerID is the identifier every child record must reference.
func (p *Portfolio) OwnerID() uuid.UUID {
	return p.Profile.ID
}

// SkillGroups always carries all three categories, each a non-nil list.
type SkillGroups struct {
	Languages    []string `json:"languages"`
	Technologies []string `json:"technologies"`
	Styling      []string `json:"styling"`
}

// Document is the read-only aggregate served to the portfolio page.
type Document struct {
	User           Profile         `json:"user"`
	Projects       []Project       `json:"projects"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Skills         SkillGroups     `json:"skills"`
	Certifications []Certification `json:"certifications"`
}

// Backend names the store that served a call.
type Backend string

const (
	BackendDatabase Backend = "database"
	BackendMemory   Backend = "memory"
)

// Repository is the read/write contract shared by the durable and the
// ephemeral adapters. FindByOwner returns an apperror not-found error when the
// owner has no profile.
type Repository interface {
	Save(ctx context.Context, p *Portfolio) error
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Portfolio, error)
}

// Store selects a Repository per call and reports which backend served it.
type Store interface {
	Save(ctx context.Context, p *Portfolio) (Backend, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Portfolio, Backend, error)
}
