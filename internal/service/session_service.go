package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/state"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

type bootstrapFetcher interface {
	Users(ctx context.Context) ([]models.User, error)
	Courses(ctx context.Context) ([]models.Course, error)
	Areas(ctx context.Context) ([]models.Area, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	CourseSubjects(ctx context.Context) ([]models.CourseSubject, error)
	Nuclei(ctx context.Context) ([]models.ProblematicNucleus, error)
	KnowledgeAreas(ctx context.Context) ([]models.KnowledgeArea, error)
	Categories(ctx context.Context) ([]models.Category, error)
	MomentTypes(ctx context.Context) ([]models.MomentType, error)
	Activities(ctx context.Context) ([]models.Activity, error)
}

// SessionService authenticates users against the upstream roster, owns the
// session registry and runs the bulk initial load.
type SessionService struct {
	upstream bootstrapFetcher
	sessions *state.Manager
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(upstream bootstrapFetcher, sessions *state.Manager, secret string, ttl time.Duration, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{
		upstream: upstream,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
	}
}

// Login resolves the user from the upstream roster, creates a session
// store, runs the bulk initial load and issues a signed session token.
func (s *SessionService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	users, err := s.upstream.Users(ctx)
	if err != nil {
		return nil, err
	}

	var user *models.User
	for i := range users {
		if users[i].ID == req.UserID {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("user %d not found", req.UserID))
	}

	sessionID, store := s.sessions.Create(*user)
	if err := s.bootstrap(ctx, store); err != nil {
		s.sessions.Delete(sessionID)
		return nil, err
	}

	token, err := s.issueToken(sessionID, user.ID)
	if err != nil {
		s.sessions.Delete(sessionID)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.ttl.Seconds()),
		Session: dto.SessionInfo{
			User: dto.NewUser(*user),
			Role: store.UserRole(),
			Area: store.UserArea(),
		},
	}, nil
}

// bootstrap issues the ten independent collection fetches concurrently and
// commits all-or-nothing: if any one fails, none of the successful results
// are applied and a single aggregated error is returned.
func (s *SessionService) bootstrap(ctx context.Context, store *state.Store) error {
	var (
		snapshot state.Bootstrap
		wg       sync.WaitGroup
		mu       sync.Mutex
		errs     []error
	)

	run := func(name string, fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
		}()
	}

	run("users", func() (err error) { snapshot.Users, err = s.upstream.Users(ctx); return })
	run("courses", func() (err error) { snapshot.Courses, err = s.upstream.Courses(ctx); return })
	run("areas", func() (err error) { snapshot.Areas, err = s.upstream.Areas(ctx); return })
	run("subjects", func() (err error) { snapshot.Subjects, err = s.upstream.Subjects(ctx); return })
	run("course-subjects", func() (err error) { snapshot.CourseSubjects, err = s.upstream.CourseSubjects(ctx); return })
	run("nuclei", func() (err error) { snapshot.Nuclei, err = s.upstream.Nuclei(ctx); return })
	run("knowledge-areas", func() (err error) { snapshot.KnowledgeAreas, err = s.upstream.KnowledgeAreas(ctx); return })
	run("categories", func() (err error) { snapshot.Categories, err = s.upstream.Categories(ctx); return })
	run("moment-types", func() (err error) { snapshot.MomentTypes, err = s.upstream.MomentTypes(ctx); return })
	run("activities", func() (err error) { snapshot.Activities, err = s.upstream.Activities(ctx); return })

	wg.Wait()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.logger.Error("bootstrap load failed, discarding partial results",
			zap.Int("failed", len(errs)),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "initial data load failed")
	}

	store.ApplyBootstrap(snapshot)
	return nil
}

func (s *SessionService) issueToken(sessionID string, userID int64) (string, error) {
	now := time.Now()
	claims := &models.SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken parses and verifies a session token.
func (s *SessionService) ValidateToken(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.ErrSessionExpired
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token")
	}
	return claims, nil
}

// StoreFor resolves the live store behind validated claims.
func (s *SessionService) StoreFor(claims *models.SessionClaims) (*state.Store, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	store, ok := s.sessions.Get(claims.SessionID)
	if !ok {
		return nil, appErrors.ErrSessionExpired
	}
	return store, nil
}

// Info describes the current session.
func (s *SessionService) Info(store *state.Store) dto.SessionInfo {
	return dto.SessionInfo{
		User: dto.NewUser(store.CurrentUser()),
		Role: store.UserRole(),
		Area: store.UserArea(),
	}
}

// Logout drops the session store.
func (s *SessionService) Logout(claims *models.SessionClaims) {
	if claims == nil {
		return
	}
	s.sessions.Delete(claims.SessionID)
}
