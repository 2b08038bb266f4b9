package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/khoahotran/portfolio-builder/internal/application/usecase/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

type PortfolioHandler struct {
	submitPortfolioUseCase *portfolioUC.SubmitPortfolioUseCase
	getPortfolioUseCase    *portfolioUC.GetPortfolioUseCase
	logger                 logger.Logger
}

func NewPortfolioHandler(
	submitUC *portfolioUC.SubmitPortfolioUseCase,
	getUC *portfolioUC.GetPortfolioUseCase,
	log logger.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{
		submitPortfolioUseCase: submitUC,
		getPortfolioUseCase:    getUC,
		logger:                 log,
	}
}

func (h *PortfolioHandler) SubmitPortfolio(c *gin.Context) {
	var req SubmitPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		e := apperror.NewInvalidInput("request body could not be decoded", err)
		e.Message = "Invalid JSON in request body"
		c.Error(e)
		return
	}

	output, err := h.submitPortfolioUseCase.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		c.Error(withServerMessage(err, "Failed to create portfolio"))
		return
	}

	ownerID := output.OwnerID.String()
	c.JSON(http.StatusOK, SubmitPortfolioResponse{
		Success:      true,
		OwnerID:      ownerID,
		PortfolioURL: "/portfolio/" + ownerID,
		Storage:      string(output.Storage),
	})
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	output, err := h.getPortfolioUseCase.Execute(c.Request.Context(), portfolioUC.GetPortfolioInput{
		OwnerID: c.Param("ownerId"),
	})
	if err != nil {
		c.Error(withServerMessage(err, "Failed to fetch portfolio"))
		return
	}
	c.JSON(http.StatusOK, output.Document)
}

// MissingOwnerID answers GET /portfolio without an id.
func (h *PortfolioHandler) MissingOwnerID(c *gin.Context) {
	c.Error(apperror.NewAppError(apperror.ErrInvalidInput, "Owner ID is required", "owner id path parameter was empty", nil))
}

// withServerMessage keeps caller errors as they are and gives server faults
// an operation-specific message.
func withServerMessage(err error, msg string) error {
	if apperror.ToHTTPStatus(err) < http.StatusInternalServerError {
		return err
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		wrapped := *appErr
		wrapped.Message = msg
		if wrapped.Err == nil {
			wrapped.Err = err
		}
		return &wrapped
	}
	return apperror.NewAppError(apperror.ErrInternal, msg, "unexpected error", err)
}
