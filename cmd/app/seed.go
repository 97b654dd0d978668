package main

import (
	"context"
	"fmt"
	"time"

	"teamfeedback-backend/internal/model"
	"teamfeedback-backend/internal/repository"
	"teamfeedback-backend/internal/service"
	"teamfeedback-backend/utilities"
)

// runSeed writes the default template catalog and returns an exit code.
func runSeed(templates service.TemplateService) int {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := templates.SeedDefaultTemplates(ctx)
	if err != nil {
		utilities.Error("Failed to seed default templates: %v", err)
		return 1
	}
	utilities.Info("Database seeding completed, %d templates inserted", n)
	return 0
}

// runIssueToken prints a coach access token for an existing user.
func runIssueToken(users repository.UserRepository, userID string, timeoutMinutes int) int {
	user, err := users.GetUserByID(context.Background(), userID)
	if err != nil {
		utilities.Error("Failed to load user %s: %v", userID, err)
		return 1
	}
	if user.Role != model.RoleCoach {
		utilities.Error("User %s is a %s, tokens are only issued to coaches", userID, user.Role)
		return 1
	}
	token, err := utilities.GenerateAccessToken(user, time.Duration(timeoutMinutes)*time.Minute)
	if err != nil {
		utilities.Error("Failed to sign token: %v", err)
		return 1
	}
	fmt.Println(token)
	return 0
}
