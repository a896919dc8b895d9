package usecase

import (
	"context"
	"errors"

	"go-clinic-queue/internal/converter"
	"go-clinic-queue/internal/delivery/dto"
	"go-clinic-queue/internal/delivery/http/middleware"
	"go-clinic-queue/internal/domain/entity"
	"go-clinic-queue/internal/domain/repository"
	"go-clinic-queue/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrStaffEmailExists = errors.New("email already exists")
)

// StaffUsecase manages front-desk accounts. Staff are plain users with the
// staff role; unlike doctors and patients they carry no profile table.
type StaffUsecase interface {
	CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error)
	GetStaff(ctx context.Context, staffID uuid.UUID) (*dto.StaffResponse, error)
	GetAllStaff(ctx context.Context) (*dto.StaffListResponse, error)
	UpdateStaff(ctx context.Context, staffID uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	DeleteStaff(ctx context.Context, staffID uuid.UUID) error
}

type staffUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
}

func NewStaffUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) StaffUsecase {
	return &staffUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
	}
}

func (u *staffUsecase) CreateStaff(ctx context.Context, req *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		RoleID:   entity.RoleIDStaff,
	}
	if err := u.userRepo.Create(tx, user); err != nil {
		u.log.Warnf("Failed to create staff member: %+v", err)
		if isDuplicateKeyError(err, "email") {
			return nil, ErrStaffEmailExists
		}
		return nil, err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionStaffCreate, "user", user.ID.String(), converter.StaffToResponse(user)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.StaffToResponse(user), nil
}

// findStaff loads a user and checks the staff role, so admin endpoints cannot
// read or edit doctors and patients through the staff routes.
func (u *staffUsecase) findStaff(db *gorm.DB, staffID uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindByID(db, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		u.log.Warnf("Failed to find staff member: %+v", err)
		return nil, err
	}
	if user.RoleID != entity.RoleIDStaff {
		return nil, ErrStaffNotFound
	}
	return user, nil
}

func (u *staffUsecase) GetStaff(ctx context.Context, staffID uuid.UUID) (*dto.StaffResponse, error) {
	user, err := u.findStaff(u.db.WithContext(ctx), staffID)
	if err != nil {
		return nil, err
	}

	return converter.StaffToResponse(user), nil
}

func (u *staffUsecase) GetAllStaff(ctx context.Context) (*dto.StaffListResponse, error) {
	users, err := u.userRepo.FindByRoleID(u.db.WithContext(ctx), entity.RoleIDStaff)
	if err != nil {
		u.log.Warnf("Failed to list staff: %+v", err)
		return nil, err
	}

	staff := converter.StaffToResponses(users)

	return &dto.StaffListResponse{
		Staff: staff,
		Total: len(staff),
	}, nil
}

func (u *staffUsecase) UpdateStaff(ctx context.Context, staffID uuid.UUID, req *dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.findStaff(tx, staffID)
	if err != nil {
		return nil, err
	}

	oldValue := converter.StaffToResponse(user)

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = string(hashedPassword)
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.IsActive != nil {
		user.IsActive = req.IsActive
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrStaffEmailExists
		}
		u.log.Warnf("Failed to update staff member: %+v", err)
		return nil, err
	}

	newValue := converter.StaffToResponse(user)
	ctxUserID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &ctxUserID, entity.AuditActionStaffUpdate, "user", staffID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.StaffToResponse(user), nil
}

func (u *staffUsecase) DeleteStaff(ctx context.Context, staffID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.findStaff(tx, staffID)
	if err != nil {
		return err
	}
	oldValue := converter.StaffToResponse(user)

	affectedRows, err := u.userRepo.Delete(tx, staffID)
	if err != nil {
		u.log.Warnf("Failed delete staff member: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrStaffNotFound
	}

	ctxUserID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &ctxUserID, entity.AuditActionStaffDelete, "user", staffID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
