package validator

import (
	"testing"

	"github.com/kylo18/practice-exam-service/internal/models"
)

func intPtr(v int) *int                           { return &v }
func coveragePtr(c models.Coverage) *models.Coverage { return &c }

func TestValidateExamCreateRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     PracticeExamCreateRequest
		wantErr bool
	}{
		{
			name: "minimal",
			req:  PracticeExamCreateRequest{SubjectID: 1},
		},
		{
			name:    "missing subject",
			req:     PracticeExamCreateRequest{},
			wantErr: true,
		},
		{
			name: "valid coverage",
			req:  PracticeExamCreateRequest{SubjectID: 1, Coverage: coveragePtr(models.CoverageFinals)},
		},
		{
			name:    "bad coverage",
			req:     PracticeExamCreateRequest{SubjectID: 1, Coverage: coveragePtr("semester")},
			wantErr: true,
		},
		{
			name: "item count in range",
			req:  PracticeExamCreateRequest{SubjectID: 1, RequestedCount: intPtr(200)},
		},
		{
			name:    "item count too large",
			req:     PracticeExamCreateRequest{SubjectID: 1, RequestedCount: intPtr(201)},
			wantErr: true,
		},
		{
			name:    "item count negative",
			req:     PracticeExamCreateRequest{SubjectID: 1, RequestedCount: intPtr(-5)},
			wantErr: true,
		},
		{
			name: "complete trio summing to 100",
			req: PracticeExamCreateRequest{
				SubjectID:       1,
				EasyPercent:     intPtr(20),
				ModeratePercent: intPtr(30),
				HardPercent:     intPtr(50),
			},
		},
		{
			name: "incomplete trio",
			req: PracticeExamCreateRequest{
				SubjectID:   1,
				EasyPercent: intPtr(50),
			},
			wantErr: true,
		},
		{
			name: "trio not summing to 100",
			req: PracticeExamCreateRequest{
				SubjectID:       1,
				EasyPercent:     intPtr(40),
				ModeratePercent: intPtr(40),
				HardPercent:     intPtr(40),
			},
			wantErr: true,
		},
		{
			name:    "time limit over cap",
			req:     PracticeExamCreateRequest{SubjectID: 1, TimeLimitMinutes: intPtr(481)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.req)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateDistributionCreateRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     DistributionCreateRequest
		wantErr bool
	}{
		{
			name: "sums to 100",
			req:  DistributionCreateRequest{Name: "balanced", EasyPercent: 30, ModeratePercent: 40, HardPercent: 30},
		},
		{
			name: "single bucket",
			req:  DistributionCreateRequest{Name: "hard only", HardPercent: 100},
		},
		{
			name:    "missing name",
			req:     DistributionCreateRequest{EasyPercent: 30, ModeratePercent: 40, HardPercent: 30},
			wantErr: true,
		},
		{
			name:    "sums under 100",
			req:     DistributionCreateRequest{Name: "short", EasyPercent: 30, ModeratePercent: 30, HardPercent: 30},
			wantErr: true,
		},
		{
			name:    "sums over 100",
			req:     DistributionCreateRequest{Name: "long", EasyPercent: 50, ModeratePercent: 50, HardPercent: 50},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.req)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateSettingUpsertRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     SettingUpsertRequest
		wantErr bool
	}{
		{
			name: "minimal",
			req:  SettingUpsertRequest{SubjectID: 1},
		},
		{
			name: "full",
			req: SettingUpsertRequest{
				SubjectID:        1,
				TimeLimitMinutes: intPtr(60),
				Coverage:         coveragePtr(models.CoverageMidterm),
				EasyPercent:      intPtr(30),
				ModeratePercent:  intPtr(40),
				HardPercent:      intPtr(30),
				ItemCount:        intPtr(50),
			},
		},
		{
			name: "incomplete trio",
			req: SettingUpsertRequest{
				SubjectID:       1,
				EasyPercent:     intPtr(30),
				ModeratePercent: intPtr(70),
			},
			wantErr: true,
		},
		{
			name:    "item count out of range",
			req:     SettingUpsertRequest{SubjectID: 1, ItemCount: intPtr(500)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.req)
			if errs.HasErrors() != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmitRequest(t *testing.T) {
	v := New()

	if errs := v.Validate(PracticeExamSubmitRequest{Answers: map[uint]uint{1: 2}}); errs.HasErrors() {
		t.Errorf("valid submit rejected: %v", errs)
	}
	if errs := v.Validate(PracticeExamSubmitRequest{}); !errs.HasErrors() {
		t.Error("nil answers accepted")
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	v := New()

	errs := v.Validate(DistributionCreateRequest{Name: "lopsided", EasyPercent: 10})
	if !errs.HasErrors() {
		t.Fatal("expected percent_sum failure")
	}
	if errs[0].Rule != "percent_sum" {
		t.Errorf("rule = %s, want percent_sum", errs[0].Rule)
	}
	if errs.Error() == "" {
		t.Error("aggregated message is empty")
	}
}
