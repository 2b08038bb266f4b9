package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

var tracer = otel.Tracer("github.com/khoahotran/portfolio-builder/usecase/portfolio")

type SubmitPortfolioUseCase struct {
	store     portfolio.Store
	uploader  service.Uploader
	publisher service.EventPublisher
	logger    logger.Logger
	newID     func() uuid.UUID
}

// NewSubmitPortfolioUseCase wires the submission flow. uploader may be nil,
// in which case resumes are stored inline.
func NewSubmitPortfolioUseCase(store portfolio.Store, uploader service.Uploader, publisher service.EventPublisher, log logger.Logger) *SubmitPortfolioUseCase {
	if publisher == nil {
		publisher = service.NewNopPublisher()
	}
	return &SubmitPortfolioUseCase{
		store:     store,
		uploader:  uploader,
		publisher: publisher,
		logger:    log,
		newID:     uuid.New,
	}
}

type ProjectInput struct {
	Title        string
	Company      string
	Duration     string
	Description  string
	Technologies string
	Achievements string
}

type ExperienceInput struct {
	Title            string
	Company          string
	Location         string
	Duration         string
	Responsibilities string
}

type EducationInput struct {
	Degree      string
	Institution string
	Duration    string
	Grade       string
}

type CertificationInput struct {
	Title         string
	Issuer        string
	Date          string
	CredentialURL string
}

// SubmitPortfolioInput mirrors the form: list fields are still raw text.
type SubmitPortfolioInput struct {
	Name      string
	Title     string
	Bio       string
	Email     string
	Phone     string
	Location  string
	Website   string
	GitHub    string
	LinkedIn  string
	Instagram string
	Resume    string

	Projects       []ProjectInput
	Experience     []ExperienceInput
	Education      []EducationInput
	Certifications []CertificationInput

	Languages    string
	Technologies string
	Styling      string
}

type SubmitPortfolioOutput struct {
	OwnerID uuid.UUID
	Storage portfolio.Backend
}

func (uc *SubmitPortfolioUseCase) Execute(ctx context.Context, input SubmitPortfolioInput) (*SubmitPortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "SubmitPortfolio")
	defer span.End()

	if missing := missingRequiredFields(input); len(missing) > 0 {
		return nil, apperror.NewMissingFields(missing)
	}

	var resume *portfolio.Resume
	if strings.TrimSpace(input.Resume) != "" {
		r, err := portfolio.ParseResumeDataURL(input.Resume)
		if err != nil {
			e := apperror.NewInvalidInput("resume must be a base64 data URL of at most 5MB", err)
			e.Fields = []string{"resume"}
			return nil, e
		}
		resume = r
	}

	ownerID := uc.newID()
	span.SetAttributes(attribute.String("portfolio.owner_id", ownerID.String()))

	p := buildPortfolio(ownerID, input)
	var uploadedID string
	if resume != nil {
		p.Profile.ResumeURL, uploadedID = uc.storeResume(ctx, ownerID, resume)
	}

	backend, err := uc.store.Save(ctx, p)
	if err != nil {
		if uploadedID != "" {
			go func() {
				if err := uc.uploader.Delete(context.Background(), uploadedID); err != nil {
					uc.logger.Error("Failed to delete orphaned resume", err, zap.String("public_id", uploadedID))
				}
			}()
		}
		return nil, fmt.Errorf("save portfolio failed: %w", err)
	}
	span.SetAttributes(attribute.String("portfolio.storage", string(backend)))

	go func() {
		err := uc.publisher.PublishPortfolioEvent(context.Background(), service.PortfolioEventPayload{
			EventType: service.PortfolioEventTypeCreated,
			OwnerID:   ownerID,
			Storage:   string(backend),
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka 'created' event", err, zap.String("owner_id", ownerID.String()))
		}
	}()

	uc.logger.Info("Portfolio created",
		zap.String("owner_id", ownerID.String()),
		zap.String("storage", string(backend)),
	)
	return &SubmitPortfolioOutput{OwnerID: ownerID, Storage: backend}, nil
}

const resumePublicID = "resume"

// storeResume uploads the resume when an uploader is available and falls back
// to keeping the data URL inline. The returned public id is empty unless an
// upload happened.
func (uc *SubmitPortfolioUseCase) storeResume(ctx context.Context, ownerID uuid.UUID, resume *portfolio.Resume) (*string, string) {
	if uc.uploader != nil {
		folder := fmt.Sprintf("portfolios/%s", ownerID.String())
		url, err := uc.uploader.Upload(ctx, bytes.NewReader(resume.Data), folder, resumePublicID)
		if err == nil {
			return &url, folder + "/" + resumePublicID
		}
		uc.logger.Warn("Resume upload failed, storing inline", zap.String("owner_id", ownerID.String()), zap.Error(err))
	}
	inline := resume.DataURL
	return &inline, ""
}

func missingRequiredFields(input SubmitPortfolioInput) []string {
	required := []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"title", input.Title},
		{"bio", input.Bio},
		{"email", input.Email},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func buildPortfolio(ownerID uuid.UUID, input SubmitPortfolioInput) *portfolio.Portfolio {
	p := &portfolio.Portfolio{
		Profile: portfolio.Profile{
			ID:        ownerID,
			Email:     input.Email,
			Name:      input.Name,
			Title:     input.Title,
			Bio:       input.Bio,
			Phone:     portfolio.OptionalString(input.Phone),
			Location:  portfolio.OptionalString(input.Location),
			Website:   portfolio.OptionalString(input.Website),
			GitHub:    portfolio.OptionalString(input.GitHub),
			LinkedIn:  portfolio.OptionalString(input.LinkedIn),
			Instagram: portfolio.OptionalString(input.Instagram),
		},
		Projects:       make([]portfolio.Project, len(input.Projects)),
		Experience:     make([]portfolio.Experience, len(input.Experience)),
		Education:      make([]portfolio.Education, len(input.Education)),
		Skills:         portfolio.BuildSkills(ownerID, input.Languages, input.Technologies, input.Styling),
		Certifications: make([]portfolio.Certification, len(input.Certifications)),
	}

	for i, pr := range input.Projects {
		p.Projects[i] = portfolio.Project{
			OwnerID:      ownerID,
			Title:        pr.Title,
			Company:      pr.Company,
			Duration:     pr.Duration,
			Description:  pr.Description,
			Technologies: portfolio.SplitCommaList(pr.Technologies),
			Achievements: portfolio.SplitLineList(pr.Achievements),
			Position:     i,
		}
	}
	for i, ex := range input.Experience {
		p.Experience[i] = portfolio.Experience{
			OwnerID:          ownerID,
			Title:            ex.Title,
			Company:          ex.Company,
			Location:         ex.Location,
			Duration:         ex.Duration,
			Responsibilities: portfolio.SplitLineList(ex.Responsibilities),
			Position:         i,
		}
	}
	for i, ed := range input.Education {
		p.Education[i] = portfolio.Education{
			OwnerID:     ownerID,
			Degree:      ed.Degree,
			Institution: ed.Institution,
			Duration:    ed.Duration,
			Grade:       portfolio.OptionalString(ed.Grade),
			Position:    i,
		}
	}
	for i, c := range input.Certifications {
		p.Certifications[i] = portfolio.Certification{
			OwnerID:       ownerID,
			Title:         c.Title,
			Issuer:        c.Issuer,
			Date:          c.Date,
			CredentialURL: portfolio.OptionalString(c.CredentialURL),
			Position:      i,
		}
	}
	return p
}
