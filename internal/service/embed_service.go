package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"teamfeedback-backend/internal/model"
)

var (
	ErrMissingEventID   = errors.New("Missing event_id parameter")
	ErrInvalidUserType  = errors.New("Invalid user_type: must be coach or player")
	ErrInvalidEmbedLink = errors.New("Invalid or expired embed link")
)

// EmbedContext identifies who is viewing an embedded form page.
type EmbedContext struct {
	EventID  string `json:"event_id"`
	UserType string `json:"user_type"`
	UserID   string `json:"user_id,omitempty"`
}

type EmbedLink struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type embedClaims struct {
	EventID  string `json:"event_id"`
	UserType string `json:"user_type"`
	UserID   string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// ParseEmbedParams checks raw query parameters of an embed URL.
func ParseEmbedParams(eventID, userType, userID string) (EmbedContext, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return EmbedContext{}, ErrMissingEventID
	}
	if userType != model.RoleCoach && userType != model.RolePlayer {
		return EmbedContext{}, ErrInvalidUserType
	}
	return EmbedContext{EventID: eventID, UserType: userType, UserID: strings.TrimSpace(userID)}, nil
}

type EmbedService interface {
	CreateLink(ec EmbedContext) (*EmbedLink, error)
	ParseToken(token string) (EmbedContext, error)
}

type embedService struct {
	secret  []byte
	ttl     time.Duration
	baseURL string
	now     func() time.Time
}

func NewEmbedService(secret string, ttl time.Duration, baseURL string) EmbedService {
	return &embedService{
		secret:  []byte(secret),
		ttl:     ttl,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// CreateLink signs the embed context into a token and builds the iframe URL.
func (s *embedService) CreateLink(ec EmbedContext) (*EmbedLink, error) {
	if _, err := ParseEmbedParams(ec.EventID, ec.UserType, ec.UserID); err != nil {
		return nil, err
	}
	if len(s.secret) == 0 {
		return nil, errors.New("embed signing secret is not configured")
	}

	issued := s.now()
	expires := issued.Add(s.ttl)
	claims := embedClaims{
		EventID:  ec.EventID,
		UserType: ec.UserType,
		UserID:   ec.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(issued),
			Subject:   ec.UserID,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign embed token: %w", err)
	}

	return &EmbedLink{
		Token:     token,
		URL:       s.baseURL + "/embed?token=" + url.QueryEscape(token),
		ExpiresAt: expires,
	}, nil
}

// ParseToken verifies a signed embed token.
func (s *embedService) ParseToken(token string) (EmbedContext, error) {
	claims := &embedClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return EmbedContext{}, ErrInvalidEmbedLink
	}
	return ParseEmbedParams(claims.EventID, claims.UserType, claims.UserID)
}
