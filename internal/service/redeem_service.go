package service

import (
	"errors"
	"time"

	"speechcoach/internal/models"
	"speechcoach/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCodeNotFound = errors.New("redeem code not found")

// RedeemCodeService manages reward codes unlocked at point thresholds
type RedeemCodeService struct {
	codeRepo *repository.RedeemCodeRepository
	logger   *zap.Logger
}

// NewRedeemCodeService creates a new redeem code service
func NewRedeemCodeService(codeRepo *repository.RedeemCodeRepository, logger *zap.Logger) *RedeemCodeService {
	return &RedeemCodeService{codeRepo: codeRepo, logger: logger}
}

// CreateCode mints a reward code for a points threshold
func (s *RedeemCodeService) CreateCode(pointsThreshold int) (*models.RedeemCode, error) {
	code := &models.RedeemCode{
		Code:            uuid.NewString(),
		PointsThreshold: pointsThreshold,
	}
	if err := s.codeRepo.Create(code); err != nil {
		return nil, err
	}
	s.logger.Info("redeem code created",
		zap.Int64("id", code.ID), zap.Int("threshold", pointsThreshold))
	return code, nil
}

// GetCode retrieves a reward code by id
func (s *RedeemCodeService) GetCode(id int64) (*models.RedeemCode, error) {
	code, err := s.codeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrCodeNotFound
	}
	return code, nil
}

// MarkUsed stamps a code as used. Redeeming an already-used code is a
// no-op that keeps the original timestamp.
func (s *RedeemCodeService) MarkUsed(id int64) (*models.RedeemCode, error) {
	code, err := s.GetCode(id)
	if err != nil {
		return nil, err
	}

	if !code.Used {
		if err := s.codeRepo.MarkUsed(id, time.Now()); err != nil {
			return nil, err
		}
		code, err = s.GetCode(id)
		if err != nil {
			return nil, err
		}
	}
	return code, nil
}
