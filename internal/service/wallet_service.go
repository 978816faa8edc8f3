package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"laundry-hub/internal/core/domain"
	"laundry-hub/internal/core/ports"
	"laundry-hub/pkg/apperror"
	"laundry-hub/pkg/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	accountNumberDigits   = 12
	accountNumberAttempts = 10
)

// WalletPolicy carries the ledger's business limits.
type WalletPolicy struct {
	MinWithdrawal  int64
	WithdrawalLock time.Duration
	HoldTTL        time.Duration
	Currency       string
	SuccessURL     string
	CancelURL      string
}

// WalletServiceImpl implements ports.WalletService. It is the only place
// balances are decrypted.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	encSvc     ports.EncryptionService
	transactor ports.DBTransactor
	gateway    ports.PaymentGateway
	policy     WalletPolicy
	metrics    *metrics.EngineMetrics
	log        zerolog.Logger
	now        func() time.Time
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	encSvc ports.EncryptionService,
	transactor ports.DBTransactor,
	gateway ports.PaymentGateway,
	policy WalletPolicy,
	m *metrics.EngineMetrics,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		encSvc:     encSvc,
		transactor: transactor,
		gateway:    gateway,
		policy:     policy,
		metrics:    m,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// ledger is the decrypted working copy of one account inside a transaction.
type ledger struct {
	account *domain.WalletAccount
	balance int64
	held    int64
}

// CreateAccount opens a wallet for a merchant or courier. It is idempotent.
func (s *WalletServiceImpl) CreateAccount(ctx context.Context, participantID string, role domain.Role) (*domain.WalletBalance, error) {
	if participantID == "" {
		return nil, apperror.Validation("participant id is required")
	}
	if !role.HoldsWallet() {
		return nil, apperror.Validation("only merchants and couriers hold wallets")
	}

	err := s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.EnsureAccountTx(ctx, tx, participantID, role)
	})
	if err != nil && !errors.Is(err, ports.ErrWalletExists) {
		return nil, asAppError(err, "create wallet")
	}
	return s.GetBalance(ctx, participantID)
}

// EnsureAccountTx creates the account inside tx unless it already exists.
func (s *WalletServiceImpl) EnsureAccountTx(ctx context.Context, tx pgx.Tx, participantID string, role domain.Role) error {
	existing, err := s.walletRepo.GetByParticipantForUpdate(ctx, tx, participantID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if existing != nil {
		return nil
	}

	accountNumber, err := s.uniqueAccountNumber(ctx, tx)
	if err != nil {
		return err
	}
	zero, err := s.encSvc.Encrypt("0")
	if err != nil {
		return apperror.ErrEncryptionFailure(fmt.Errorf("encrypt opening balance: %w", err))
	}
	zeroHeld, err := s.encSvc.Encrypt("0")
	if err != nil {
		return apperror.ErrEncryptionFailure(fmt.Errorf("encrypt opening hold: %w", err))
	}

	now := s.now()
	account := &domain.WalletAccount{
		ID:               uuid.New(),
		ParticipantID:    participantID,
		Role:             role,
		AccountNumber:    accountNumber,
		EncryptedBalance: zero,
		EncryptedHeld:    zeroHeld,
		LockUntil:        now.Add(s.policy.WithdrawalLock),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.walletRepo.Create(ctx, tx, account); err != nil {
		if errors.Is(err, ports.ErrWalletExists) {
			return err
		}
		return apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("participant_id", participantID).
		Str("role", string(role)).
		Str("account_number", accountNumber).
		Msg("wallet account created")
	return nil
}

func (s *WalletServiceImpl) uniqueAccountNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits), nil)
	for i := 0; i < accountNumberAttempts; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", apperror.InternalError(fmt.Errorf("generating account number: %w", err))
		}
		candidate := fmt.Sprintf("%0*d", accountNumberDigits, n)
		taken, err := s.walletRepo.AccountNumberExists(ctx, tx, candidate)
		if err != nil {
			return "", apperror.InternalError(fmt.Errorf("checking account number: %w", err))
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", apperror.InternalError(errors.New("could not allocate a unique account number"))
}

// GetBalance returns the decrypted view of a wallet.
func (s *WalletServiceImpl) GetBalance(ctx context.Context, participantID string) (*domain.WalletBalance, error) {
	account, err := s.walletRepo.GetByParticipant(ctx, participantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}
	l, err := s.open(account)
	if err != nil {
		return nil, err
	}
	return l.view(), nil
}

// Hold moves amount from balance into the held bucket.
func (s *WalletServiceImpl) Hold(ctx context.Context, participantID string, amount int64) error {
	return s.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.HoldTx(ctx, tx, participantID, amount)
	})
}

// HoldTx is Hold inside the caller's transaction.
func (s *WalletServiceImpl) HoldTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) error {
	if amount <= 0 {
		return apperror.Validation("hold amount must be positive")
	}
	return s.mutate(ctx, tx, participantID, "hold", func(l *ledger) error {
		if l.balance < amount {
			return apperror.ErrInsufficientFunds()
		}
		l.balance -= amount
		l.held += amount
		expires := s.now().Add(s.policy.HoldTTL)
		l.account.HoldExpiresAt = &expires
		return nil
	})
}

// Release returns the whole held amount to balance.
func (s *WalletServiceImpl) Release(ctx context.Context, participantID string) (int64, error) {
	var released int64
	err := s.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		released, err = s.release(ctx, tx, participantID, -1)
		return err
	})
	return released, err
}

// ReleaseTx returns up to amount of the held bucket to balance.
func (s *WalletServiceImpl) ReleaseTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, nil
	}
	return s.release(ctx, tx, participantID, amount)
}

func (s *WalletServiceImpl) release(ctx context.Context, tx pgx.Tx, participantID string, amount int64) (int64, error) {
	var released int64
	err := s.mutate(ctx, tx, participantID, "release", func(l *ledger) error {
		released = l.takeHeld(amount)
		l.balance += released
		return nil
	})
	return released, err
}

// Collect zeroes the held amount; the platform keeps it.
func (s *WalletServiceImpl) Collect(ctx context.Context, participantID string) (int64, error) {
	var collected int64
	err := s.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		collected, err = s.collect(ctx, tx, participantID, -1)
		return err
	})
	return collected, err
}

// CollectTx keeps up to amount of the held bucket for the platform.
func (s *WalletServiceImpl) CollectTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, nil
	}
	return s.collect(ctx, tx, participantID, amount)
}

func (s *WalletServiceImpl) collect(ctx context.Context, tx pgx.Tx, participantID string, amount int64) (int64, error) {
	var collected int64
	err := s.mutate(ctx, tx, participantID, "collect", func(l *ledger) error {
		collected = l.takeHeld(amount)
		return nil
	})
	return collected, err
}

// TopUp credits amount to balance.
func (s *WalletServiceImpl) TopUp(ctx context.Context, participantID string, amount int64) error {
	return s.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.TopUpTx(ctx, tx, participantID, amount)
	})
}

// TopUpTx is TopUp inside the caller's transaction.
func (s *WalletServiceImpl) TopUpTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) error {
	if amount <= 0 {
		return apperror.Validation("top-up amount must be positive")
	}
	return s.mutate(ctx, tx, participantID, "topup", func(l *ledger) error {
		l.balance += amount
		return nil
	})
}

// CreditNet credits gross less the commission at feeRate and returns the net.
func (s *WalletServiceImpl) CreditNet(ctx context.Context, participantID string, gross int64, feeRate decimal.Decimal) (int64, error) {
	var net int64
	err := s.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		net, err = s.CreditNetTx(ctx, tx, participantID, gross, feeRate)
		return err
	})
	return net, err
}

// CreditNetTx is CreditNet inside the caller's transaction.
func (s *WalletServiceImpl) CreditNetTx(ctx context.Context, tx pgx.Tx, participantID string, gross int64, feeRate decimal.Decimal) (int64, error) {
	if gross <= 0 {
		return 0, apperror.Validation("credit amount must be positive")
	}
	if feeRate.IsNegative() || feeRate.GreaterThan(decimal.NewFromInt(1)) {
		return 0, apperror.Validation("fee rate must be between 0 and 1")
	}
	net := gross - decimal.NewFromInt(gross).Mul(feeRate).Round(0).IntPart()
	if net <= 0 {
		return 0, nil
	}
	err := s.mutate(ctx, tx, participantID, "credit_net", func(l *ledger) error {
		l.balance += net
		return nil
	})
	if err != nil {
		return 0, err
	}
	return net, nil
}

// Withdraw debits amount for payout. Checks run in order: floor, lock, funds.
func (s *WalletServiceImpl) Withdraw(ctx context.Context, participantID string, amount int64) (*domain.WalletBalance, error) {
	if amount < s.policy.MinWithdrawal {
		s.metrics.IncWalletOp("withdraw", apperror.ErrBelowMinimum(s.policy.MinWithdrawal))
		return nil, apperror.ErrBelowMinimum(s.policy.MinWithdrawal)
	}

	var view *domain.WalletBalance
	err := s.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.mutate(ctx, tx, participantID, "withdraw", func(l *ledger) error {
			now := s.now()
			if now.Before(l.account.LockUntil) {
				return apperror.ErrWithdrawalLocked()
			}
			if l.balance < amount {
				return apperror.ErrInsufficientFunds()
			}
			l.balance -= amount
			l.account.LockUntil = now.Add(s.policy.WithdrawalLock)
			view = l.view()
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("participant_id", participantID).
		Int64("amount", amount).
		Time("lock_until", view.LockUntil).
		Msg("withdrawal debited")
	return view, nil
}

// Clawback debits up to amount and returns what was actually recovered.
func (s *WalletServiceImpl) Clawback(ctx context.Context, participantID string, amount int64) (int64, error) {
	var recovered int64
	err := s.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		recovered, err = s.ClawbackTx(ctx, tx, participantID, amount)
		return err
	})
	return recovered, err
}

// ClawbackTx is Clawback inside the caller's transaction.
func (s *WalletServiceImpl) ClawbackTx(ctx context.Context, tx pgx.Tx, participantID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, nil
	}
	var recovered int64
	err := s.mutate(ctx, tx, participantID, "clawback", func(l *ledger) error {
		recovered = min(amount, l.balance)
		l.balance -= recovered
		return nil
	})
	if err != nil {
		return 0, err
	}
	if recovered < amount {
		s.log.Warn().
			Str("participant_id", participantID).
			Int64("requested", amount).
			Int64("recovered", recovered).
			Msg("clawback short of requested amount")
	}
	return recovered, nil
}

// TopUpCheckout opens a gateway checkout that credits the caller's wallet
// once the payment webhook arrives.
func (s *WalletServiceImpl) TopUpCheckout(ctx context.Context, actor domain.Actor, amount int64) (*ports.CheckoutSession, error) {
	if !actor.Role.HoldsWallet() {
		return nil, apperror.ErrForbidden("only merchants and couriers can top up")
	}
	if amount <= 0 {
		return nil, apperror.Validation("top-up amount must be positive")
	}
	account, err := s.walletRepo.GetByParticipant(ctx, actor.ID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrNotFound("Wallet")
	}

	ref := domain.TopUpReference(actor.ID, s.now().UnixMilli())
	session, err := s.gateway.CreateCheckout(ctx, ports.CheckoutRequest{
		Amount:      amount,
		Currency:    s.policy.Currency,
		ReferenceID: ref,
		Description: "Wallet top-up " + account.AccountNumber,
		SuccessURL:  s.policy.SuccessURL,
		CancelURL:   s.policy.CancelURL,
	})
	if err != nil {
		return nil, apperror.ErrExternalGateway(err)
	}
	s.log.Info().Str("participant_id", actor.ID).Str("reference_id", ref).Int64("amount", amount).Msg("top-up checkout created")
	return session, nil
}

// mutate locks, decrypts, applies fn, re-encrypts and writes one account.
func (s *WalletServiceImpl) mutate(ctx context.Context, tx pgx.Tx, participantID, op string, fn func(l *ledger) error) (err error) {
	defer func() { s.metrics.IncWalletOp(op, err) }()

	account, err := s.walletRepo.GetByParticipantForUpdate(ctx, tx, participantID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if account == nil {
		return apperror.ErrNotFound("Wallet")
	}

	l, err := s.open(account)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	if l.held == 0 {
		l.account.HoldExpiresAt = nil
	}

	if account.EncryptedBalance, err = s.encryptAmount(l.balance); err != nil {
		return err
	}
	if account.EncryptedHeld, err = s.encryptAmount(l.held); err != nil {
		return err
	}
	account.UpdatedAt = s.now()

	if err := s.walletRepo.Update(ctx, tx, account); err != nil {
		return apperror.InternalError(fmt.Errorf("update wallet: %w", err))
	}

	s.log.Debug().
		Str("participant_id", participantID).
		Str("op", op).
		Msg("wallet mutated")
	return nil
}

func (s *WalletServiceImpl) inTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	if err := s.transactor.WithinTx(ctx, fn); err != nil {
		return asAppError(err, "wallet tx")
	}
	return nil
}

func (s *WalletServiceImpl) open(account *domain.WalletAccount) (*ledger, error) {
	balance, err := s.decryptAmount(account.EncryptedBalance)
	if err != nil {
		return nil, err
	}
	held, err := s.decryptAmount(account.EncryptedHeld)
	if err != nil {
		return nil, err
	}
	return &ledger{account: account, balance: balance, held: held}, nil
}

func (s *WalletServiceImpl) decryptAmount(ciphertext string) (int64, error) {
	plain, err := s.encSvc.Decrypt(ciphertext)
	if err != nil {
		return 0, apperror.ErrEncryptionFailure(fmt.Errorf("decrypt amount: %w", err))
	}
	v, err := strconv.ParseInt(plain, 10, 64)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("parse amount: %w", err))
	}
	return v, nil
}

func (s *WalletServiceImpl) encryptAmount(v int64) (string, error) {
	enc, err := s.encSvc.Encrypt(strconv.FormatInt(v, 10))
	if err != nil {
		return "", apperror.ErrEncryptionFailure(fmt.Errorf("encrypt amount: %w", err))
	}
	return enc, nil
}

// takeHeld removes up to amount (all if amount < 0) from held.
func (l *ledger) takeHeld(amount int64) int64 {
	if amount < 0 || amount > l.held {
		amount = l.held
	}
	l.held -= amount
	return amount
}

func (l *ledger) view() *domain.WalletBalance {
	v := &domain.WalletBalance{
		ParticipantID: l.account.ParticipantID,
		AccountNumber: l.account.AccountNumber,
		Balance:       l.balance,
		Held:          l.held,
		LockUntil:     l.account.LockUntil,
	}
	if l.account.HoldExpiresAt != nil {
		t := *l.account.HoldExpiresAt
		v.HoldExpiresAt = &t
	}
	return v
}
