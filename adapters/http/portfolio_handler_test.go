package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio-builder/adapters/persistence"
	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type failingRepo struct {
	err error
}

func (r failingRepo) Save(context.Context, *portfolio.Portfolio) error { return r.err }

func (r failingRepo) FindByOwner(context.Context, uuid.UUID) (*portfolio.Portfolio, error) {
	return nil, r.err
}

func (r failingRepo) Ping(context.Context) error { return r.err }

func newTestRouter(store portfolio.Store, status StorageStatusReporter, isProduction bool) *gin.Engine {
	log := logger.NewNopLogger()
	submitUC := portfolioUC.NewSubmitPortfolioUseCase(store, nil, nil, log)
	getUC := portfolioUC.NewGetPortfolioUseCase(store, log)
	return NewRouter(
		NewPortfolioHandler(submitUC, getUC, log),
		NewHealthHandler(status, "test", log),
		log,
		isProduction,
	)
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

type PortfolioHandlerTestSuite struct {
	suite.Suite
	memory *persistence.MemoryPortfolioRepo
	store  *persistence.FallbackStore
	router *gin.Engine
}

func (s *PortfolioHandlerTestSuite) SetupTest() {
	s.memory = persistence.NewMemoryPortfolioRepo()
	s.store = persistence.NewFallbackStore(nil, s.memory, logger.NewNopLogger())
	s.router = newTestRouter(s.store, s.store, false)
}

func TestPortfolioHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(PortfolioHandlerTestSuite))
}

func submission() gin.H {
	return gin.H{
		"name":     "Ada Lovelace",
		"title":    "Engineer",
		"bio":      "Notes on the engine.",
		"email":    "ada@example.com",
		"location": "London",
		"projects": []gin.H{
			{"title": "Engine", "company": "Babbage", "technologies": "Go, , SQL", "achievements": "First program\n\nNotes"},
		},
		"experience": []gin.H{
			{"title": "Analyst", "company": "Royal Society", "responsibilities": "Translate\nAnnotate"},
		},
		"education":      []gin.H{{"degree": "Mathematics", "institution": "Tutoring"}},
		"certifications": []gin.H{{"title": "Engines", "issuer": "Babbage", "date": "1843"}},
		"languages":      "Go, Rust",
		"technologies":   "Postgres",
		"styling":        "",
	}
}

func (s *PortfolioHandlerTestSuite) Test_SubmitThenFetch() {
	rr := doJSON(s.router, http.MethodPost, "/api/portfolio", submission())
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())

	created := decodeBody(s.T(), rr)
	ownerID, _ := created["ownerId"].(string)
	s.Equal(true, created["success"])
	s.Equal("/portfolio/"+ownerID, created["portfolioUrl"])
	s.Equal("memory", created["storage"])
	s.Equal(1, s.memory.Count())

	rr = doJSON(s.router, http.MethodGet, "/api/portfolio/"+ownerID, nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	var doc portfolio.Document
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &doc))
	s.Equal("ada@example.com", doc.User.Email)
	s.Equal(ownerID, doc.User.ID.String())
	s.Require().NotNil(doc.User.Location)
	s.Equal("London", *doc.User.Location)
	s.Nil(doc.User.Phone)
	s.Require().Len(doc.Projects, 1)
	s.Equal([]string{"Go", "SQL"}, doc.Projects[0].Technologies)
	s.Equal([]string{"First program", "Notes"}, doc.Projects[0].Achievements)
	s.Equal([]string{"Translate", "Annotate"}, doc.Experience[0].Responsibilities)
	s.Equal([]string{"Go", "Rust"}, doc.Skills.Languages)
	s.Equal([]string{"Postgres"}, doc.Skills.Technologies)
	s.Equal([]string{}, doc.Skills.Styling)
	s.Len(doc.Certifications, 1)
}

func (s *PortfolioHandlerTestSuite) Test_MissingRequiredFields() {
	body := submission()
	delete(body, "email")
	body["bio"] = "   "

	rr := doJSON(s.router, http.MethodPost, "/api/portfolio", body)
	s.Equal(http.StatusBadRequest, rr.Code)

	resp := decodeBody(s.T(), rr)
	s.Equal(false, resp["success"])
	s.Equal("Missing required fields: bio, email", resp["error"])
	s.Equal([]any{"bio", "email"}, resp["fields"])
	s.Equal(0, s.memory.Count())
}

func (s *PortfolioHandlerTestSuite) Test_MalformedJSON() {
	rr := doJSON(s.router, http.MethodPost, "/api/portfolio", `{"name": `)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Equal("Invalid JSON in request body", decodeBody(s.T(), rr)["error"])
	s.Equal(0, s.memory.Count())
}

func (s *PortfolioHandlerTestSuite) Test_FetchErrors() {
	rr := doJSON(s.router, http.MethodGet, "/api/portfolio/"+uuid.NewString(), nil)
	s.Equal(http.StatusNotFound, rr.Code)
	s.Equal("Portfolio not found", decodeBody(s.T(), rr)["error"])

	rr = doJSON(s.router, http.MethodGet, "/api/portfolio/not-a-uuid", nil)
	s.Equal(http.StatusNotFound, rr.Code)

	rr = doJSON(s.router, http.MethodGet, "/api/portfolio", nil)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *PortfolioHandlerTestSuite) Test_DurableFailureFallsBackToMemory() {
	durable := failingRepo{err: apperror.NewInternal("connection refused", errors.New("dial tcp"))}
	store := persistence.NewFallbackStore(durable, s.memory, logger.NewNopLogger())
	router := newTestRouter(store, store, false)

	rr := doJSON(router, http.MethodPost, "/api/portfolio", submission())
	s.Require().Equal(http.StatusOK, rr.Code)
	created := decodeBody(s.T(), rr)
	s.Equal("memory", created["storage"])

	rr = doJSON(router, http.MethodGet, "/api/portfolio/"+created["ownerId"].(string), nil)
	s.Equal(http.StatusOK, rr.Code)

	rr = doJSON(router, http.MethodGet, "/api/health", nil)
	s.Require().Equal(http.StatusOK, rr.Code)
	health := decodeBody(s.T(), rr)
	s.Equal("not available", health["database"])
	s.Equal(true, health["hasDbUrl"])
	s.NotNil(health["databaseError"])
}

func (s *PortfolioHandlerTestSuite) Test_HealthWithoutDatabase() {
	rr := doJSON(s.router, http.MethodGet, "/api/health", nil)
	s.Require().Equal(http.StatusOK, rr.Code)

	health := decodeBody(s.T(), rr)
	s.Equal(true, health["success"])
	s.Equal("not available", health["database"])
	s.Equal(false, health["hasDbUrl"])
	s.Equal("test", health["environment"])
	s.NotEmpty(health["timestamp"])
}

type fixedStore struct {
	p *portfolio.Portfolio
}

func (f fixedStore) Save(context.Context, *portfolio.Portfolio) (portfolio.Backend, error) {
	return portfolio.BackendDatabase, nil
}

func (f fixedStore) FindByOwner(_ context.Context, ownerID uuid.UUID) (*portfolio.Portfolio, portfolio.Backend, error) {
	if ownerID != f.p.OwnerID() {
		return nil, "", apperror.NewNotFound("portfolio", ownerID.String())
	}
	return f.p, portfolio.BackendDatabase, nil
}

type fixedFault struct{}

func (fixedFault) Save(context.Context, *portfolio.Portfolio) (portfolio.Backend, error) {
	return "", apperror.NewInternal("memory save cancelled", context.Canceled)
}

func (fixedFault) FindByOwner(context.Context, uuid.UUID) (*portfolio.Portfolio, portfolio.Backend, error) {
	return nil, "", errors.New("driver exploded")
}

func TestPortfolioHandler_ServerFaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	status := persistence.NewFallbackStore(nil, persistence.NewMemoryPortfolioRepo(), logger.NewNopLogger())

	t.Run("details outside production", func(t *testing.T) {
		router := newTestRouter(fixedFault{}, status, false)

		rr := doJSON(router, http.MethodPost, "/api/portfolio", submission())
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, "Failed to create portfolio", body["error"])
		assert.NotEmpty(t, body["details"])

		rr = doJSON(router, http.MethodGet, "/api/portfolio/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to fetch portfolio", decodeBody(t, rr)["error"])
	})

	t.Run("details hidden in production", func(t *testing.T) {
		router := newTestRouter(fixedFault{}, status, true)

		rr := doJSON(router, http.MethodPost, "/api/portfolio", submission())
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decodeBody(t, rr)
		assert.NotContains(t, body, "details")
	})
}

func goldenPortfolio() *portfolio.Portfolio {
	ownerID := uuid.MustParse("0f8e6a52-3b1d-4c8e-9a4f-1b2c3d4e5f60")
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	github := "https://github.com/ada"
	grade := "First"

	return &portfolio.Portfolio{
		Profile: portfolio.Profile{
			ID: ownerID, Email: "ada@example.com", Name: "Ada Lovelace", Title: "Engineer",
			Bio: "Notes on the engine.", GitHub: &github, CreatedAt: at, UpdatedAt: at,
		},
		Projects: []portfolio.Project{{
			ID: uuid.MustParse("00000000-0000-4000-8000-000000000001"), OwnerID: ownerID,
			Title: "Engine", Company: "Babbage", Duration: "1843", Description: "Notes",
			Technologies: []string{"Go", "SQL"}, Achievements: []string{"First program"},
			Position: 0, CreatedAt: at,
		}},
		Experience: nil,
		Education: []portfolio.Education{{
			ID: uuid.MustParse("00000000-0000-4000-8000-000000000002"), OwnerID: ownerID,
			Degree: "Mathematics", Institution: "Tutoring", Duration: "1830", Grade: &grade,
			Position: 0, CreatedAt: at,
		}},
		Skills: []portfolio.Skill{
			{ID: uuid.MustParse("00000000-0000-4000-8000-000000000004"), OwnerID: ownerID,
				Category: portfolio.CategoryTechnologies, Name: "Postgres", Position: 2, CreatedAt: at},
			{ID: uuid.MustParse("00000000-0000-4000-8000-000000000003"), OwnerID: ownerID,
				Category: portfolio.CategoryLanguages, Name: "Go", Position: 0, CreatedAt: at},
			{ID: uuid.MustParse("00000000-0000-4000-8000-000000000005"), OwnerID: ownerID,
				Category: portfolio.CategoryLanguages, Name: "Rust", Position: 1, CreatedAt: at},
		},
	}
}

func TestPortfolioHandler_DocumentGolden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := goldenPortfolio()
	status := persistence.NewFallbackStore(nil, persistence.NewMemoryPortfolioRepo(), logger.NewNopLogger())
	router := newTestRouter(fixedStore{p: p}, status, false)

	rr := doJSON(router, http.MethodGet, "/api/portfolio/"+p.OwnerID().String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	canonical, err := json.MarshalIndent(body, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "portfolio_document", canonical)
}
