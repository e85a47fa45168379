package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/kylo18/practice-exam-service/internal/models"
	"github.com/kylo18/practice-exam-service/internal/repositories"
)

// fakeRepository is an in-memory Repository for service tests. Transactions
// snapshot the mutable state and restore it when the callback fails, so
// rollback behavior is observable.
type fakeRepository struct {
	subjects      *fakeSubjectRepo
	questions     *fakeQuestionRepo
	distributions *fakeDistributionRepo
	exams         *fakeExamRepo
	settings      *fakeSettingRepo
	results       *fakeResultRepo
	users         *fakeUserRepo
}

func newFakeRepository() *fakeRepository {
	questions := &fakeQuestionRepo{questions: map[uint]*models.Question{}}
	return &fakeRepository{
		subjects:      &fakeSubjectRepo{subjects: map[uint]*models.Subject{}},
		questions:     questions,
		distributions: &fakeDistributionRepo{distributions: map[uint]*models.DifficultyDistribution{}},
		exams:         &fakeExamRepo{exams: map[uint]*models.PracticeExam{}, questions: questions},
		settings:      &fakeSettingRepo{settings: map[string]*models.PracticeExamSetting{}},
		results:       &fakeResultRepo{},
		users:         &fakeUserRepo{users: map[string]*models.User{}},
	}
}

func (f *fakeRepository) Subject() repositories.SubjectRepository           { return f.subjects }
func (f *fakeRepository) Question() repositories.QuestionRepository        { return f.questions }
func (f *fakeRepository) Distribution() repositories.DistributionRepository { return f.distributions }
func (f *fakeRepository) Exam() repositories.ExamRepository                { return f.exams }
func (f *fakeRepository) Setting() repositories.SettingRepository          { return f.settings }
func (f *fakeRepository) Result() repositories.ResultRepository            { return f.results }
func (f *fakeRepository) User() repositories.UserRepository                { return f.users }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	examSnapshot := make(map[uint]*models.PracticeExam, len(f.exams.exams))
	for k, v := range f.exams.exams {
		examSnapshot[k] = v
	}
	linkSnapshot := make([]*models.PracticeExamQuestion, len(f.exams.links))
	copy(linkSnapshot, f.exams.links)
	settingSnapshot := make(map[string]*models.PracticeExamSetting, len(f.settings.settings))
	for k, v := range f.settings.settings {
		settingSnapshot[k] = v
	}
	resultSnapshot := make([]*models.PracticeExamResult, len(f.results.results))
	copy(resultSnapshot, f.results.results)

	if err := fn(f); err != nil {
		f.exams.exams = examSnapshot
		f.exams.links = linkSnapshot
		f.settings.settings = settingSnapshot
		f.results.results = resultSnapshot
		return err
	}
	return nil
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== SUBJECTS =====

type fakeSubjectRepo struct {
	subjects map[uint]*models.Subject
}

func (f *fakeSubjectRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error) {
	if s, ok := f.subjects[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("subject %d: %w", id, gorm.ErrRecordNotFound)
}

func (f *fakeSubjectRepo) Exists(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	_, ok := f.subjects[id]
	return ok, nil
}

// ===== QUESTIONS =====

type fakeQuestionRepo struct {
	questions map[uint]*models.Question
}

func (f *fakeQuestionRepo) addQuestion(q *models.Question) {
	f.questions[q.ID] = q
}

func (f *fakeQuestionRepo) ApprovedCandidates(ctx context.Context, tx *gorm.DB, subjectID uint, coverage models.Coverage, difficulty models.DifficultyLevel) ([]uint, error) {
	var ids []uint
	for _, q := range f.questions {
		if q.SubjectID == subjectID && q.Coverage == coverage && q.Difficulty == difficulty && q.Status == models.QuestionApproved {
			ids = append(ids, q.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeQuestionRepo) Availability(ctx context.Context, tx *gorm.DB, subjectID uint, coverage models.Coverage) (*repositories.PoolAvailability, error) {
	availability := &repositories.PoolAvailability{}
	for _, q := range f.questions {
		if q.SubjectID != subjectID || q.Coverage != coverage || q.Status != models.QuestionApproved {
			continue
		}
		switch q.Difficulty {
		case models.DifficultyEasy:
			availability.Easy++
		case models.DifficultyModerate:
			availability.Moderate++
		case models.DifficultyHard:
			availability.Hard++
		}
		availability.Total++
	}
	return availability, nil
}

func (f *fakeQuestionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.Question, error) {
	var out []*models.Question
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

// ===== DISTRIBUTIONS =====

type fakeDistributionRepo struct {
	distributions map[uint]*models.DifficultyDistribution
	nextID        uint
}

func (f *fakeDistributionRepo) Create(ctx context.Context, tx *gorm.DB, d *models.DifficultyDistribution) error {
	f.nextID++
	d.ID = f.nextID
	f.distributions[d.ID] = d
	return nil
}

func (f *fakeDistributionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.DifficultyDistribution, error) {
	if d, ok := f.distributions[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("distribution %d: %w", id, gorm.ErrRecordNotFound)
}

func (f *fakeDistributionRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.DifficultyDistribution, error) {
	var out []*models.DifficultyDistribution
	for _, d := range f.distributions {
		out = append(out, d)
	}
	return out, nil
}

// ===== EXAMS =====

type fakeExamRepo struct {
	exams  map[uint]*models.PracticeExam
	links  []*models.PracticeExamQuestion
	nextID uint

	// questions backs GetByIDWithQuestions link resolution
	questions *fakeQuestionRepo
}

func (f *fakeExamRepo) Create(ctx context.Context, tx *gorm.DB, exam *models.PracticeExam) error {
	f.nextID++
	exam.ID = f.nextID
	f.exams[exam.ID] = exam
	return nil
}

func (f *fakeExamRepo) AddQuestions(ctx context.Context, tx *gorm.DB, links []*models.PracticeExamQuestion) error {
	f.links = append(f.links, links...)
	return nil
}

func (f *fakeExamRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.PracticeExam, error) {
	if e, ok := f.exams[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("practice exam %d: %w", id, gorm.ErrRecordNotFound)
}

func (f *fakeExamRepo) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.PracticeExam, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, fmt.Errorf("practice exam %d: %w", id, gorm.ErrRecordNotFound)
	}

	loaded := *exam
	loaded.Questions = nil
	for _, link := range f.links {
		if link.ExamID != id {
			continue
		}
		resolved := *link
		if f.questions != nil {
			if q, ok := f.questions.questions[link.QuestionID]; ok {
				resolved.Question = *q
			}
		}
		loaded.Questions = append(loaded.Questions, resolved)
	}
	sort.Slice(loaded.Questions, func(i, j int) bool {
		return loaded.Questions[i].Order < loaded.Questions[j].Order
	})
	return &loaded, nil
}

func (f *fakeExamRepo) GetByCreator(ctx context.Context, tx *gorm.DB, creatorID string, filters repositories.ExamFilters) ([]*models.PracticeExam, error) {
	var out []*models.PracticeExam
	for _, e := range f.exams {
		if e.CreatedBy == creatorID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ===== SETTINGS =====

type fakeSettingRepo struct {
	settings map[string]*models.PracticeExamSetting

	// failUpsert simulates a write failure inside a transaction.
	failUpsert bool
}

func settingKey(userID string, subjectID uint) string {
	return fmt.Sprintf("%s/%d", userID, subjectID)
}

func (f *fakeSettingRepo) Get(ctx context.Context, tx *gorm.DB, userID string, subjectID uint) (*models.PracticeExamSetting, error) {
	if s, ok := f.settings[settingKey(userID, subjectID)]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("practice exam setting for user %s subject %d: %w", userID, subjectID, gorm.ErrRecordNotFound)
}

func (f *fakeSettingRepo) Create(ctx context.Context, tx *gorm.DB, setting *models.PracticeExamSetting) error {
	f.settings[settingKey(setting.UserID, setting.SubjectID)] = setting
	return nil
}

func (f *fakeSettingRepo) Upsert(ctx context.Context, tx *gorm.DB, setting *models.PracticeExamSetting) error {
	if f.failUpsert {
		return fmt.Errorf("forced setting write failure")
	}
	f.settings[settingKey(setting.UserID, setting.SubjectID)] = setting
	return nil
}

// ===== RESULTS =====

type fakeResultRepo struct {
	results []*models.PracticeExamResult
	nextID  uint
}

func (f *fakeResultRepo) Create(ctx context.Context, tx *gorm.DB, result *models.PracticeExamResult) error {
	f.nextID++
	result.ID = f.nextID
	f.results = append(f.results, result)
	return nil
}

func (f *fakeResultRepo) GetByExam(ctx context.Context, tx *gorm.DB, examID uint) ([]*models.PracticeExamResult, error) {
	var out []*models.PracticeExamResult
	for _, r := range f.results {
		if r.ExamID == examID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID string, filters repositories.ResultFilters) ([]*models.PracticeExamResult, error) {
	var out []*models.PracticeExamResult
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) List(ctx context.Context, tx *gorm.DB, filters repositories.ResultFilters) ([]*models.PracticeExamResult, error) {
	out := make([]*models.PracticeExamResult, len(f.results))
	copy(out, f.results)
	return out, nil
}

// ===== USERS =====

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, gorm.ErrRecordNotFound)
	}
	return user, nil
}
