package http

import (
	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
)

type ProjectRequest struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Duration     string `json:"duration"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	Achievements string `json:"achievements"`
}

type ExperienceRequest struct {
	Title            string `json:"title"`
	Company          string `json:"company"`
	Location         string `json:"location"`
	Duration         string `json:"duration"`
	Responsibilities string `json:"responsibilities"`
}

type EducationRequest struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Duration    string `json:"duration"`
	Grade       string `json:"grade"`
}

type CertificationRequest struct {
	Title         string `json:"title"`
	Issuer        string `json:"issuer"`
	Date          string `json:"date"`
	CredentialURL string `json:"credential_url"`
}

// SubmitPortfolioRequest is the form payload. Required fields are checked by
// the use case so every missing one can be reported at once.
type SubmitPortfolioRequest struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Bio       string `json:"bio"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
	Instagram string `json:"instagram"`
	Resume    string `json:"resume"`

	Projects       []ProjectRequest       `json:"projects"`
	Experience     []ExperienceRequest    `json:"experience"`
	Education      []EducationRequest     `json:"education"`
	Certifications []CertificationRequest `json:"certifications"`

	Languages    string `json:"languages"`
	Technologies string `json:"technologies"`
	Styling      string `json:"styling"`
}

type SubmitPortfolioResponse struct {
	Success      bool   `json:"success"`
	OwnerID      string `json:"ownerId"`
	PortfolioURL string `json:"portfolioUrl"`
	Storage      string `json:"storage"`
}

type HealthResponse struct {
	Success       bool    `json:"success"`
	Timestamp     string  `json:"timestamp"`
	Database      string  `json:"database"`
	DatabaseError *string `json:"databaseError"`
	Environment   string  `json:"environment"`
	HasDBURL      bool    `json:"hasDbUrl"`
}

func (r SubmitPortfolioRequest) ToInput() portfolioUC.SubmitPortfolioInput {
	input := portfolioUC.SubmitPortfolioInput{
		Name:         r.Name,
		Title:        r.Title,
		Bio:          r.Bio,
		Email:        r.Email,
		Phone:        r.Phone,
		Location:     r.Location,
		Website:      r.Website,
		GitHub:       r.GitHub,
		LinkedIn:     r.LinkedIn,
		Instagram:    r.Instagram,
		Resume:       r.Resume,
		Languages:    r.Languages,
		Technologies: r.Technologies,
		Styling:      r.Styling,
	}
	for _, p := range r.Projects {
		input.Projects = append(input.Projects, portfolioUC.ProjectInput(p))
	}
	for _, e := range r.Experience {
		input.Experience = append(input.Experience, portfolioUC.ExperienceInput(e))
	}
	for _, e := range r.Education {
		input.Education = append(input.Education, portfolioUC.EducationInput(e))
	}
	for _, c := range r.Certifications {
		input.Certifications = append(input.Certifications, portfolioUC.CertificationInput(c))
	}
	return input
}
