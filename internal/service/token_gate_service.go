package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// TokenGateServiceImpl implements ports.TokenGate.
type TokenGateServiceImpl struct {
	tokenRepo  ports.TokenRepository
	orderRepo  ports.OrderRepository
	transactor ports.DBTransactor
	sigSvc     ports.SignatureService
	qr         ports.QRRenderer
	signingKey string
	freshness  time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

// NewTokenGateService creates a new TokenGateServiceImpl. freshness bounds
// both re-mint of a consumed token and downstream freshness checks.
func NewTokenGateService(
	tokenRepo ports.TokenRepository,
	orderRepo ports.OrderRepository,
	transactor ports.DBTransactor,
	sigSvc ports.SignatureService,
	qr ports.QRRenderer,
	signingKey string,
	freshness time.Duration,
	log zerolog.Logger,
) *TokenGateServiceImpl {
	return &TokenGateServiceImpl{
		tokenRepo:  tokenRepo,
		orderRepo:  orderRepo,
		transactor: transactor,
		sigSvc:     sigSvc,
		qr:         qr,
		signingKey: signingKey,
		freshness:  freshness,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// MintTx issues the token for (orderID, checkpoint). An unused token is
// overwritten in place; a consumed one is superseded by a fresh record once
// its scan is older than the freshness window.
func (s *TokenGateServiceImpl) MintTx(ctx context.Context, tx pgx.Tx, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error) {
	existing, err := s.tokenRepo.GetActiveForUpdate(ctx, tx, orderID, checkpoint)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock token: %w", err))
	}

	payload, png, err := s.render(orderID, checkpoint)
	if err != nil {
		return nil, err
	}
	now := s.now()

	if existing != nil && !existing.IsUsed() {
		existing.Payload = payload
		existing.QRCode = png
		existing.CreatedAt = now
		if err := s.tokenRepo.Update(ctx, tx, existing); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("reissue token: %w", err))
		}
		return existing, nil
	}

	if existing != nil {
		if existing.FreshAt(now, s.freshness) {
			return nil, apperror.ErrAlreadyUsed()
		}
		existing.SupersededAt = &now
		if err := s.tokenRepo.Update(ctx, tx, existing); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("supersede token: %w", err))
		}
	}

	token := &domain.VerificationToken{
		ID:         uuid.New(),
		OrderID:    orderID,
		Checkpoint: checkpoint,
		Payload:    payload,
		QRCode:     png,
		CreatedAt:  now,
	}
	if err := s.tokenRepo.Create(ctx, tx, token); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create token: %w", err))
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("checkpoint", string(checkpoint)).
		Bool("superseded", existing != nil).
		Msg("verification token minted")
	return token, nil
}

// Consume spends the token after checking presence, prior use, the actor,
// and the scanned payload, in that order.
func (s *TokenGateServiceImpl) Consume(ctx context.Context, actor domain.Actor, orderID string, checkpoint domain.Checkpoint, payload string) (*domain.VerificationToken, error) {
	if !checkpoint.Valid() {
		return nil, apperror.Validation("unknown checkpoint")
	}

	var consumed *domain.VerificationToken
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock order: %w", err))
		}
		if order == nil {
			return apperror.ErrNotFound("Order")
		}

		token, err := s.tokenRepo.GetActiveForUpdate(ctx, tx, orderID, checkpoint)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock token: %w", err))
		}
		if token == nil {
			return apperror.ErrNotFound("Verification token")
		}
		if token.IsUsed() {
			return apperror.ErrAlreadyUsed()
		}
		if actor.Role != domain.RoleCourier || order.CourierID == "" || order.CourierID != actor.ID {
			return apperror.ErrForbidden("only the assigned courier can scan this code")
		}
		if order.Status != scanPhase(checkpoint) {
			return apperror.ErrInvalidState(fmt.Sprintf("cannot scan %s code while order is %s", checkpoint, order.Status))
		}
		if !s.matches(token, payload) {
			return apperror.ErrTokenMismatch()
		}

		now := s.now()
		token.UsedAt = &now
		token.UsedBy = actor.ID
		if err := s.tokenRepo.Update(ctx, tx, token); err != nil {
			return apperror.InternalError(fmt.Errorf("consume token: %w", err))
		}
		consumed = token
		return nil
	})
	if err != nil {
		return nil, asAppError(err, "consume token")
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("checkpoint", string(checkpoint)).
		Str("actor_id", actor.ID).
		Msg("verification token consumed")
	return consumed, nil
}

// CheckFreshnessTx requires that actorID consumed the checkpoint token no
// longer than window ago.
func (s *TokenGateServiceImpl) CheckFreshnessTx(ctx context.Context, tx pgx.Tx, orderID string, checkpoint domain.Checkpoint, actorID string, window time.Duration) error {
	token, err := s.tokenRepo.GetActiveForUpdate(ctx, tx, orderID, checkpoint)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock token: %w", err))
	}
	if token == nil {
		return apperror.ErrNotFound("Verification token")
	}
	if !token.IsUsed() {
		return apperror.ErrInvalidState(fmt.Sprintf("%s code has not been scanned", checkpoint))
	}
	if token.UsedBy != actorID {
		return apperror.ErrForbidden("code was scanned by a different courier")
	}
	if !token.FreshAt(s.now(), window) {
		return apperror.ErrTokenExpired()
	}
	return nil
}

// Reissue re-mints a checkpoint token for the order's merchant.
func (s *TokenGateServiceImpl) Reissue(ctx context.Context, actor domain.Actor, orderID string, checkpoint domain.Checkpoint) (*domain.VerificationToken, error) {
	if !checkpoint.Valid() {
		return nil, apperror.Validation("unknown checkpoint")
	}

	var token *domain.VerificationToken
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return apperror.InternalError(fmt.Errorf("lock order: %w", err))
		}
		if order == nil {
			return apperror.ErrNotFound("Order")
		}
		if actor.Role != domain.RoleMerchant || actor.ID != order.MerchantID {
			return apperror.ErrForbidden("only the order's merchant can re-issue codes")
		}
		if !reissuable(order, checkpoint) {
			return apperror.ErrInvalidState(fmt.Sprintf("cannot re-issue %s code while order is %s", checkpoint, order.Status))
		}
		token, err = s.MintTx(ctx, tx, orderID, checkpoint)
		return err
	})
	if err != nil {
		return nil, asAppError(err, "reissue token")
	}
	return token, nil
}

// QRCode returns the PNG of the active token to a party of the order.
func (s *TokenGateServiceImpl) QRCode(ctx context.Context, actor domain.Actor, orderID string, checkpoint domain.Checkpoint) ([]byte, error) {
	if !checkpoint.Valid() {
		return nil, apperror.Validation("unknown checkpoint")
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get order: %w", err))
	}
	if order == nil {
		return nil, apperror.ErrNotFound("Order")
	}
	if actor.ID != order.MerchantID && actor.ID != order.CustomerID && actor.Role != domain.RoleAdmin {
		return nil, apperror.ErrForbidden("not a party to this order")
	}

	token, err := s.tokenRepo.GetActive(ctx, orderID, checkpoint)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get token: %w", err))
	}
	if token == nil {
		return nil, apperror.ErrNotFound("Verification token")
	}
	if token.IsUsed() {
		return nil, apperror.ErrAlreadyUsed()
	}
	return token.QRCode, nil
}

func (s *TokenGateServiceImpl) render(orderID string, checkpoint domain.Checkpoint) (string, []byte, error) {
	body, err := json.Marshal(domain.TokenClaims{
		OrderID:    orderID,
		Checkpoint: checkpoint,
		Nonce:      uuid.NewString(),
	})
	if err != nil {
		return "", nil, apperror.InternalError(fmt.Errorf("marshal token claims: %w", err))
	}
	payload := s.sigSvc.Seal(s.signingKey, body)
	png, err := s.qr.RenderPNG(payload)
	if err != nil {
		return "", nil, apperror.InternalError(fmt.Errorf("render token: %w", err))
	}
	return payload, png, nil
}

func (s *TokenGateServiceImpl) matches(token *domain.VerificationToken, payload string) bool {
	if payload != token.Payload {
		return false
	}
	body, err := s.sigSvc.Open(s.signingKey, payload)
	if err != nil {
		return false
	}
	var claims domain.TokenClaims
	if err := json.Unmarshal(body, &claims); err != nil {
		return false
	}
	return claims.OrderID == token.OrderID && claims.Checkpoint == token.Checkpoint
}

// scanPhase is the order status in which a checkpoint's code is scanned.
func scanPhase(checkpoint domain.Checkpoint) domain.OrderStatus {
	if checkpoint == domain.CheckpointReturn {
		return domain.OrderStatusAwaitingRiderReturn
	}
	return domain.OrderStatusAcceptedByRider
}

func reissuable(order *domain.Order, checkpoint domain.Checkpoint) bool {
	if checkpoint == domain.CheckpointReturn {
		return order.Status == domain.OrderStatusAwaitingRiderReturn
	}
	return order.Status == domain.OrderStatusAcceptedByMerchant || order.Status == domain.OrderStatusAcceptedByRider
}
