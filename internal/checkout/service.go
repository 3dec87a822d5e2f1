package checkout

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/oakline/storefront-backend/internal/cart"
	"github.com/oakline/storefront-backend/internal/orders"
	pkgcheckout "github.com/oakline/storefront-backend/pkg/checkout"
	"github.com/oakline/storefront-backend/pkg/enums"
	pkgerrors "github.com/oakline/storefront-backend/pkg/errors"
	"github.com/oakline/storefront-backend/pkg/logger"
)

// Service validates checkout input, computes totals, persists the order
// record, and resets the cart. One checkout flow runs per session at a time.
type Service struct {
	repo     orders.Repository
	logg     *logger.Logger
	validate *validator.Validate

	now        func() time.Time
	newOrderID func() string

	mu     sync.Mutex
	states map[string]enums.CheckoutState
}

// NewService builds a checkout service backed by the provided order repository.
func NewService(repo orders.Repository, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &Service{
		repo:       repo,
		logg:       logg,
		validate:   newFormValidator(),
		now:        time.Now,
		newOrderID: uuid.NewString,
		states:     make(map[string]enums.CheckoutState),
	}, nil
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	mustRegister := func(tag string, fn func(string) bool) {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	mustRegister("cardnumber", pkgcheckout.ValidCardNumber)
	mustRegister("cardexpiry", pkgcheckout.ValidExpiration)
	mustRegister("cardcvv", pkgcheckout.ValidCVV)
	return v
}

// Validate enforces the per-field checkout constraints and returns a
// field-scoped validation error on failure.
func (s *Service) Validate(form Form) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "checkout validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "cardnumber":
		return "must be 16 digits"
	case "cardexpiry":
		return "must be in MM/YY format"
	case "cardcvv":
		return "must be 3 or 4 digits"
	}
	return "is invalid"
}

// Total sums price times quantity over the cart, rounded to 2 decimal places.
// Pure function; the value shown before submission matches the persisted one.
func (s *Service) Total(items []cart.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// State reports the session's checkout state, for disabling submit controls.
func (s *Service) State(sessionID string) enums.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[sessionID]; ok {
		return state
	}
	return enums.CheckoutStateIdle
}

// Processing reports whether a submission is in flight for the session.
func (s *Service) Processing(sessionID string) bool {
	return s.State(sessionID) == enums.CheckoutStateSubmitting
}

func (s *Service) setState(sessionID string, state enums.CheckoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
}

// beginValidate moves the session into Validating. Rejected while a
// submission is in flight so a second request cannot clobber its state.
func (s *Service) beginValidate(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[sessionID] == enums.CheckoutStateSubmitting {
		return pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	s.states[sessionID] = enums.CheckoutStateValidating
	return nil
}

// beginSubmit transitions the session into Submitting unless one is already
// in flight.
func (s *Service) beginSubmit(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[sessionID] == enums.CheckoutStateSubmitting {
		return pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	s.states[sessionID] = enums.CheckoutStateSubmitting
	return nil
}

// Submit runs the full checkout flow: validate, compute the total, persist
// the order record, then clear the cart. On failure the cart is untouched and
// the session returns to a retryable state with no partial order persisted.
func (s *Service) Submit(ctx context.Context, sessionID string, form Form, store *cart.Store) (string, error) {
	if err := s.beginValidate(sessionID); err != nil {
		return "", err
	}
	if err := s.Validate(form); err != nil {
		s.setState(sessionID, enums.CheckoutStateIdle)
		return "", err
	}

	items := store.Items()
	if len(items) == 0 {
		s.setState(sessionID, enums.CheckoutStateIdle)
		return "", pkgerrors.New(pkgerrors.CodeConflict, "cart is empty")
	}

	if err := s.beginSubmit(sessionID); err != nil {
		return "", err
	}

	record := orders.Record{
		OrderID:         s.newOrderID(),
		CustomerName:    form.Name,
		Address:         form.Address,
		City:            form.City,
		PostalCode:      form.PostalCode,
		Country:         form.Country,
		CardNumberLast4: pkgcheckout.CardLast4(form.CardNumber),
		TotalPrice:      s.Total(items),
		Items:           lineRefs(items),
		Status:          enums.OrderStatusPending,
		CreatedAt:       s.now(),
	}

	// The write runs on a detached context: navigating away mid-submission
	// must not orphan a half-finished order.
	if err := s.repo.Create(context.WithoutCancel(ctx), record); err != nil {
		s.setState(sessionID, enums.CheckoutStateFailed)
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout failed")
	}

	if err := store.Clear(ctx); err != nil {
		s.logError(ctx, sessionID, "checkout.cart_clear_failed", err)
	}

	s.setState(sessionID, enums.CheckoutStateSucceeded)
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"session_id": sessionID,
			"order_id":   record.OrderID,
		})
		s.logg.Info(logCtx, "checkout.succeeded")
	}
	return record.OrderID, nil
}

func lineRefs(items []cart.Item) []orders.LineRef {
	refs := make([]orders.LineRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, orders.LineRef{ProductID: item.ID, Quantity: item.Quantity})
	}
	return refs
}

func (s *Service) logError(ctx context.Context, sessionID, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithSessionID(ctx, sessionID)
	s.logg.Error(ctx, msg, err)
}
