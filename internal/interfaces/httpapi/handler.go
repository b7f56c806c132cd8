package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/courtvision/fantasy-hoops/internal/platform/logging"
	"github.com/courtvision/fantasy-hoops/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	valueService    *usecase.PlayerValueService
	rotoService     *usecase.RotoService
	tradeService    *usecase.TradeService
	importerService *usecase.ImporterService
	taskService     *usecase.TaskService
	auditService    *usecase.AuditService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	valueService *usecase.PlayerValueService,
	rotoService *usecase.RotoService,
	tradeService *usecase.TradeService,
	importerService *usecase.ImporterService,
	taskService *usecase.TaskService,
	auditService *usecase.AuditService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		valueService:    valueService,
		rotoService:     rotoService,
		tradeService:    tradeService,
		importerService: importerService,
		taskService:     taskService,
		auditService:    auditService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func joinInvalidInput(err error) error {
	return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
}

func parseInt64PathValue(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", usecase.ErrInvalidInput, name)
	}

	return value, nil
}

func parseDateQuery(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, nil
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be formatted YYYY-MM-DD, got %q", usecase.ErrInvalidInput, name, raw)
	}

	return date, nil
}
