package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/kylo18/practice-exam-service/internal/models"
)

// Validator wraps go-playground/validator with domain rules.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all domain rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates struct tags and registered struct-level rules.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerRules() {
	// Coverage period validation
	v.validate.RegisterValidation("coverage_period", func(fl validator.FieldLevel) bool {
		coverage := models.Coverage(fl.Field().String())
		return coverage == models.CoverageMidterm || coverage == models.CoverageFinals
	})

	// Difficulty level validation
	v.validate.RegisterValidation("difficulty_level", func(fl validator.FieldLevel) bool {
		level := models.DifficultyLevel(fl.Field().String())
		for _, vl := range models.AllDifficulties {
			if level == vl {
				return true
			}
		}
		return false
	})

	// Item count validation (1-200 questions)
	v.validate.RegisterValidation("item_count", func(fl validator.FieldLevel) bool {
		count := fl.Field().Int()
		return count >= 1 && count <= 200
	})

	v.validate.RegisterStructValidation(validateDistributionCreate, DistributionCreateRequest{})
	v.validate.RegisterStructValidation(validateExamCreatePercents, PracticeExamCreateRequest{})
	v.validate.RegisterStructValidation(validateSettingPercents, SettingUpsertRequest{})
}

// validateDistributionCreate requires percentages to sum to exactly 100.
func validateDistributionCreate(sl validator.StructLevel) {
	req := sl.Current().Interface().(DistributionCreateRequest)

	if req.EasyPercent+req.ModeratePercent+req.HardPercent != 100 {
		sl.ReportError(req.EasyPercent, "easy_percent", "EasyPercent", "percent_sum", "")
	}
}

// validateExamCreatePercents enforces the inline percentage trio: all three
// provided together and summing to 100, or none at all.
func validateExamCreatePercents(sl validator.StructLevel) {
	req := sl.Current().Interface().(PracticeExamCreateRequest)
	reportPercentTrio(sl, req.EasyPercent, req.ModeratePercent, req.HardPercent)
}

func validateSettingPercents(sl validator.StructLevel) {
	req := sl.Current().Interface().(SettingUpsertRequest)
	reportPercentTrio(sl, req.EasyPercent, req.ModeratePercent, req.HardPercent)
}

func reportPercentTrio(sl validator.StructLevel, easy, moderate, hard *int) {
	provided := 0
	for _, p := range []*int{easy, moderate, hard} {
		if p != nil {
			provided++
		}
	}

	if provided == 0 {
		return
	}

	if provided < 3 {
		sl.ReportError(easy, "easy_percent", "EasyPercent", "percent_trio", "")
		return
	}

	if *easy+*moderate+*hard != 100 {
		sl.ReportError(easy, "easy_percent", "EasyPercent", "percent_sum", "")
	}
}
