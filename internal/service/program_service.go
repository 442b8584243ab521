package service

import (
	"strings"

	"github.com/xxx-ad-poster/internal/constants"
	"github.com/xxx-ad-poster/internal/models"
	"github.com/xxx-ad-poster/internal/repository"
)

// ProgramService 联盟项目服务
type ProgramService struct {
	programRepo repository.ProgramRepository
}

// NewProgramService 创建联盟项目服务
func NewProgramService(programRepo repository.ProgramRepository) *ProgramService {
	return &ProgramService{programRepo: programRepo}
}

// CreateProgramInput 创建联盟项目的入参
type CreateProgramInput struct {
	Name      string `json:"name"`
	Niche     string `json:"niche"`
	GeoFocus  string `json:"geo_focus"`
	SignupURL string `json:"signup_url"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// Create 创建联盟项目，校验不通过时不写库
func (s *ProgramService) Create(input CreateProgramInput) (*models.AffiliateProgram, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProgramNameRequired
	}
	signupURL := strings.TrimSpace(input.SignupURL)
	if signupURL == "" {
		return nil, ErrProgramSignupRequired
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ProgramStatusResearching
	}
	if !isValidProgramStatus(status) {
		return nil, ErrProgramStatusInvalid
	}

	program := &models.AffiliateProgram{
		Name:      name,
		Niche:     strings.TrimSpace(input.Niche),
		GeoFocus:  strings.TrimSpace(input.GeoFocus),
		SignupURL: signupURL,
		Status:    status,
		Notes:     strings.TrimSpace(input.Notes),
	}
	if err := s.programRepo.Create(program); err != nil {
		return nil, err
	}
	return program, nil
}

// List 联盟项目列表
func (s *ProgramService) List(filter repository.ProgramListFilter) ([]models.AffiliateProgram, int64, error) {
	return s.programRepo.List(filter)
}

// Get 获取单个联盟项目
func (s *ProgramService) Get(id uint) (*models.AffiliateProgram, error) {
	program, err := s.programRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}
	return program, nil
}

func isValidProgramStatus(status string) bool {
	for _, candidate := range constants.ProgramStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}
