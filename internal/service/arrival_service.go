package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TWRT/arrival-location/internal/client"
	"github.com/TWRT/arrival-location/internal/config"
	"github.com/TWRT/arrival-location/internal/ido"
	"github.com/TWRT/arrival-location/internal/repository"
)

// Names of the caller variables the dispatcher reads and writes.
const (
	VarUser             = "User"
	VarSearchCoNum      = "gCoNum"
	VarSearchStat       = "gStat"
	VarDeliveryLocation = "gAdr0Name"
	VarShipDate         = "gProjectedDate"
	VarShipLocation     = "gWhse"
	ResultSlot          = "vJSONResult"
)

type VariableProvider interface {
	Get(name string) string
}

type OutputSlot interface {
	Set(name, value string)
}

type CallJournal interface {
	Create(ctx context.Context, rec *repository.CallRecord) error
	GetByID(ctx context.Context, id string) (*repository.CallRecord, error)
	ListRecent(ctx context.Context, limit int) ([]repository.CallRecord, error)
}

type ResultNotifier interface {
	PublishResult(ctx context.Context, callID, payload string) error
}

// RefetchError is returned when a write went through but the read that
// follows it failed. Retrying the write is not safe.
type RefetchError struct {
	Mode ido.Mode
	Err  error
}

func (e *RefetchError) Error() string {
	return fmt.Sprintf("%s committed, refetch failed: %v", e.Mode, e.Err)
}

func (e *RefetchError) Unwrap() error {
	return e.Err
}

type Option func(*ArrivalService)

func WithClock(now func() time.Time) Option {
	return func(s *ArrivalService) { s.now = now }
}

func WithNotifier(n ResultNotifier) Option {
	return func(s *ArrivalService) { s.notifier = n }
}

// ArrivalService reads and writes arrival location order lines through the
// IONAPIMethods indirection.
type ArrivalService struct {
	ion               config.IONConfig
	builder           *ido.Builder
	invoker           client.MethodInvoker
	journal           CallJournal
	notifier          ResultNotifier
	auditLocation     *time.Location
	refetchAfterWrite bool
	now               func() time.Time
	logger            *zap.Logger
}

func NewArrivalService(
	cfg *config.Config,
	invoker client.MethodInvoker,
	journal CallJournal,
	logger *zap.Logger,
	opts ...Option,
) *ArrivalService {
	s := &ArrivalService{
		ion:               cfg.ION,
		builder:           ido.NewBuilder(cfg.IDOService, cfg.IDOName, cfg.Mongoose.Site),
		invoker:           invoker,
		journal:           journal,
		auditLocation:     cfg.AuditLocation,
		refetchAfterWrite: cfg.RefetchAfterWrite,
		now:               time.Now,
		logger:            logger.Named("arrival"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CallAPI runs one operation. Reads publish an ExternalResult JSON document
// to the ResultSlot of out; writes publish nothing unless refetch after write
// is enabled, in which case the follow-up read publishes.
func (s *ArrivalService) CallAPI(ctx context.Context, mode ido.Mode, vars VariableProvider, out OutputSlot) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ido.ErrUnsupportedMode, int(mode))
	}

	if mode == ido.ModeRead {
		return s.load(ctx, vars, out)
	}

	if err := s.write(ctx, mode, vars); err != nil {
		return err
	}

	if s.refetchAfterWrite {
		if err := s.load(ctx, vars, out); err != nil {
			return &RefetchError{Mode: mode, Err: err}
		}
	}
	return nil
}

func (s *ArrivalService) load(ctx context.Context, vars VariableProvider, out OutputSlot) (err error) {
	callID := uuid.NewString()
	log := s.logger.With(zap.String("call.id", callID), zap.Stringer("ido.mode", ido.ModeRead))

	criteria := ido.Criteria{
		OrderNumber: vars.Get(VarSearchCoNum),
		Status:      vars.Get(VarSearchStat),
	}
	if err := criteria.Validate(); err != nil {
		log.Warn("criteria.invalid", zap.Error(err))
		return err
	}

	props, err := ido.Fields(ido.ModeRead, nil)
	if err != nil {
		return err
	}

	req, err := s.builder.Build(ido.ModeRead, props, criteria)
	if err != nil {
		return err
	}
	defer func() { s.record(ctx, callID, ido.ModeRead, req, err) }()

	content, err := s.invoke(ctx, req)
	if err != nil {
		log.Error("invoke.fail", zap.String("ido.method", req.Path), zap.Error(err))
		return err
	}

	items, err := ido.ParseLoadResponse(content)
	if err != nil {
		log.Error("parseLoadResponse.fail", zap.Error(err))
		return err
	}

	result := ido.ToExternalResult(items, ido.ResultContext{
		DeliveryLocation: vars.Get(VarDeliveryLocation),
		ShipDate:         vars.Get(VarShipDate),
		ShipLocation:     vars.Get(VarShipLocation),
		DeliveryStatus:   vars.Get(VarSearchStat),
	})

	payload, err := ido.MarshalResult(result)
	if err != nil {
		return err
	}

	out.Set(ResultSlot, payload)

	if s.notifier != nil {
		if nerr := s.notifier.PublishResult(ctx, callID, payload); nerr != nil {
			log.Warn("publishResult.fail", zap.Error(nerr))
		}
	}

	log.Info("successful load", zap.Int("items", len(items)))
	return nil
}

func (s *ArrivalService) write(ctx context.Context, mode ido.Mode, vars VariableProvider) (err error) {
	callID := uuid.NewString()
	log := s.logger.With(zap.String("call.id", callID), zap.Stringer("ido.mode", mode))

	stamp := ido.AuditStamp(s.now(), s.auditLocation)

	props, err := ido.Fields(mode, ido.WriteValues(vars, stamp))
	if err != nil {
		return err
	}

	req, err := s.builder.Build(mode, props, ido.Criteria{})
	if err != nil {
		return err
	}
	defer func() { s.record(ctx, callID, mode, req, err) }()

	// the update response carries nothing the caller uses
	if _, err = s.invoke(ctx, req); err != nil {
		log.Error("invoke.fail", zap.String("ido.method", req.Path), zap.Error(err))
		return err
	}

	log.Info("successful write", zap.String("item_id", req.ItemID))
	return nil
}

func (s *ArrivalService) invoke(ctx context.Context, req ido.RequestSpec) (string, error) {
	params, err := req.Parameters()
	if err != nil {
		return "", err
	}

	resp, err := s.invoker.InvokeIONAPIMethod(ctx, client.InvokeRequest{
		SSO:          s.ion.SSO,
		ServerID:     s.ion.ServerID,
		SuiteContext: s.ion.SuiteContext,
		HTTPMethod:   req.HTTPMethod,
		MethodName:   req.Path,
		Parameters:   params,
		ContentType:  s.ion.ContentType,
		Timeout:      s.ion.TimeoutMillis(),
	})
	if err != nil {
		return "", fmt.Errorf("invoke IONAPI method: %w", err)
	}

	if resp.Failed {
		return "", &ido.RemoteAPIError{
			Detail:  resp.Parameter(client.ParamResponseCode),
			Infobar: resp.Parameter(client.ParamResponseInfobar),
		}
	}

	return resp.Parameter(client.ParamResponseContent), nil
}

func (s *ArrivalService) record(ctx context.Context, callID string, mode ido.Mode, req ido.RequestSpec, callErr error) {
	if s.journal == nil {
		return
	}

	rec := &repository.CallRecord{
		ID:         callID,
		Mode:       int(mode),
		IDOName:    s.builder.IDOName(),
		HTTPMethod: req.HTTPMethod,
		MethodPath: req.Path,
		ItemID:     req.ItemID,
		Status:     repository.CallStatusSuccess,
		CreatedAt:  s.now().UTC(),
	}
	if callErr != nil {
		rec.Status = repository.CallStatusFailed
		rec.ErrorMessage = callErr.Error()
	}

	if err := s.journal.Create(ctx, rec); err != nil {
		s.logger.Warn("journal.fail", zap.String("call.id", callID), zap.Error(err))
	}
}

func (s *ArrivalService) GetCall(ctx context.Context, id string) (*repository.CallRecord, error) {
	if s.journal == nil {
		return nil, repository.ErrNotFound
	}
	return s.journal.GetByID(ctx, id)
}

func (s *ArrivalService) RecentCalls(ctx context.Context, limit int) ([]repository.CallRecord, error) {
	if s.journal == nil {
		return []repository.CallRecord{}, nil
	}
	return s.journal.ListRecent(ctx, limit)
}
