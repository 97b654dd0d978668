package service

import (
	"fmt"
	"strings"

	"teamfeedback-backend/internal/model"
)

// ValidationResult reports every structural defect found in one pass.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// ValidateFormStructure checks a section tree. It never fails; defects are
// returned as data and the caller must check IsValid.
func ValidateFormStructure(in model.StructureInput) ValidationResult {
	return ValidateSections(in.Normalize())
}

// ValidateSections validates an already normalized section list.
func ValidateSections(sections model.Structure) ValidationResult {
	errs := []string{}

	if len(sections) == 0 {
		errs = append(errs, "Form must have at least one section")
	}

	for i, section := range sections {
		if len(section.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("Section %d must have at least one question", i+1))
			continue
		}
		for j, q := range section.Questions {
			if strings.TrimSpace(q.Text) == "" {
				errs = append(errs, fmt.Sprintf("Question %d in section %d must have text", j+1, i+1))
			}
			if !model.IsValidQuestionType(q.Type) {
				errs = append(errs, fmt.Sprintf("Question %d in section %d has invalid type: %s", j+1, i+1, q.Type))
			}
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// CountTotalQuestions sums the question lists of every section. Absent input
// counts as zero.
func CountTotalQuestions(in model.StructureInput) int {
	return countQuestions(in.Normalize())
}

// CountSections returns the number of sections in the input.
func CountSections(in model.StructureInput) int {
	return len(in.Normalize())
}

func countQuestions(sections model.Structure) int {
	total := 0
	for _, s := range sections {
		total += len(s.Questions)
	}
	return total
}
