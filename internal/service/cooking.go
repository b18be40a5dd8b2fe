package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipe-realm/backend/internal/apperr"
	"github.com/pageza/recipe-realm/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CookingCommand is one control action on a live cooking session
type CookingCommand string

const (
	CommandNext       CookingCommand = "next"
	CommandPrevious   CookingCommand = "previous"
	CommandStartTimer CookingCommand = "start_timer"
	CommandStopTimer  CookingCommand = "stop_timer"
	CommandComplete   CookingCommand = "complete"
	CommandRepeat     CookingCommand = "repeat"
)

var transcriptRules = []struct {
	command CookingCommand
	phrases []string
}{
	{CommandNext, []string{"next", "continue"}},
	{CommandPrevious, []string{"previous", "back"}},
	{CommandStartTimer, []string{"start timer"}},
	{CommandStopTimer, []string{"stop timer", "pause timer"}},
	{CommandComplete, []string{"complete", "done"}},
	{CommandRepeat, []string{"repeat"}},
}

// InterpretTranscript maps spoken or typed text onto a command; the first matching rule wins
func InterpretTranscript(text string) (CookingCommand, bool) {
	normalized := strings.ToLower(text)
	normalized = strings.NewReplacer("_", " ", "-", " ").Replace(normalized)
	for _, rule := range transcriptRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(normalized, phrase) {
				return rule.command, true
			}
		}
	}
	return "", false
}

var stepDurations = []struct {
	minutes  int
	keywords []string
}{
	{30, []string{"bake", "roast"}},
	{15, []string{"simmer", "cook"}},
	{10, []string{"heat", "fry"}},
	{3, []string{"mix", "combine"}},
	{5, []string{"chop", "slice"}},
}

// defaultStepMinutes applies when no keyword matches
const defaultStepMinutes = 5

// EstimateStepDuration guesses the minutes an instruction takes from its verbs
func EstimateStepDuration(instruction string) int {
	lower := strings.ToLower(instruction)
	for _, rule := range stepDurations {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.minutes
			}
		}
	}
	return defaultStepMinutes
}

type CookingStep struct {
	ID          string `json:"id"`
	Instruction string `json:"instruction"`
	Duration    int    `json:"duration"`
	Completed   bool   `json:"completed"`
}

// LiveSession is the in-flight state of a cooking run
type LiveSession struct {
	ID             string        `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	RecipeID       uuid.UUID     `json:"recipe_id"`
	RecipeTitle    string        `json:"recipe_title"`
	Steps          []CookingStep `json:"steps"`
	CurrentStep    int           `json:"current_step"`
	TimerSeconds   int           `json:"timer_seconds"`
	TimerRunning   bool          `json:"timer_running"`
	TimerStartedAt *time.Time    `json:"timer_started_at,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
}

// Remaining returns the timer's seconds left at now
func (s *LiveSession) Remaining(now time.Time) int {
	if !s.TimerRunning || s.TimerStartedAt == nil {
		return s.TimerSeconds
	}
	left := s.TimerSeconds - int(now.Sub(*s.TimerStartedAt).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

func (s *LiveSession) resetTimer() {
	s.TimerSeconds = 0
	s.TimerRunning = false
	s.TimerStartedAt = nil
}

func (s *LiveSession) stepText() string {
	return fmt.Sprintf("Step %d: %s", s.CurrentStep+1, s.Steps[s.CurrentStep].Instruction)
}

// CookingState is what clients see of a live session
type CookingState struct {
	*LiveSession
	Progress       float64 `json:"progress"`
	TimerRemaining int     `json:"timer_remaining"`
	Spoken         string  `json:"spoken,omitempty"`
}

// ErrSessionNotFound is returned by stores for unknown or expired sessions
var ErrSessionNotFound = errors.New("cooking session not found")

// SessionStore keeps live sessions between requests
type SessionStore interface {
	Save(ctx context.Context, session *LiveSession) error
	Get(ctx context.Context, id string) (*LiveSession, error)
	Delete(ctx context.Context, id string) error
}

// CookingService drives live cooking sessions
type CookingService struct {
	db      *gorm.DB
	recipes IRecipeService
	store   SessionStore
	logger  *zap.Logger
	now     func() time.Time

	mu sync.Mutex
}

func NewCookingService(db *gorm.DB, recipes IRecipeService, store SessionStore, logger *zap.Logger) *CookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CookingService{
		db:      db,
		recipes: recipes,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *CookingService) state(session *LiveSession, spoken string) *CookingState {
	now := s.now()
	remaining := session.Remaining(now)
	if session.TimerRunning && remaining == 0 {
		session.resetTimer()
	}
	return &CookingState{
		LiveSession:    session,
		Progress:       float64(session.CurrentStep+1) / float64(len(session.Steps)) * 100,
		TimerRemaining: remaining,
		Spoken:         spoken,
	}
}

// Start opens a live session for the recipe
func (s *CookingService) Start(ctx context.Context, userID, recipeID uuid.UUID) (*CookingState, error) {
	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if len(recipe.Instructions) == 0 {
		return nil, apperr.BadRequest("Recipe has no instructions")
	}

	steps := make([]CookingStep, len(recipe.Instructions))
	for i, instruction := range recipe.Instructions {
		steps[i] = CookingStep{
			ID:          fmt.Sprintf("step-%d", i),
			Instruction: instruction,
			Duration:    EstimateStepDuration(instruction),
		}
	}

	session := &LiveSession{
		ID:          uuid.New().String(),
		UserID:      userID,
		RecipeID:    recipe.ID,
		RecipeTitle: recipe.Title,
		Steps:       steps,
		StartedAt:   s.now().UTC(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save cooking session: %w", err)
	}
	s.logger.Info("cooking session started",
		zap.String("session_id", session.ID),
		zap.String("recipe_id", recipeID.String()))
	return s.state(session, session.stepText()), nil
}

func (s *CookingService) load(ctx context.Context, userID uuid.UUID, sessionID string) (*LiveSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperr.NotFound("Cooking session")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cooking session: %w", err)
	}
	if session.UserID != userID {
		return nil, apperr.Forbidden("Cooking session belongs to another user")
	}
	return session, nil
}

func (s *CookingService) Get(ctx context.Context, userID uuid.UUID, sessionID string) (*CookingState, error) {
	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.state(session, ""), nil
}

// Apply runs a command against the session. When command is empty the
// transcript is interpreted instead.
func (s *CookingService) Apply(ctx context.Context, userID uuid.UUID, sessionID, command, transcript string) (*CookingState, error) {
	input := command
	if strings.TrimSpace(input) == "" {
		input = transcript
	}
	cmd, ok := InterpretTranscript(input)
	if !ok {
		return nil, apperr.BadRequest("Unrecognized cooking command")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	last := len(session.Steps) - 1
	spoken := ""
	switch cmd {
	case CommandNext:
		if session.CurrentStep < last {
			session.CurrentStep++
			session.resetTimer()
		}
		spoken = session.stepText()
	case CommandPrevious:
		if session.CurrentStep > 0 {
			session.CurrentStep--
			session.resetTimer()
		}
		spoken = session.stepText()
	case CommandStartTimer:
		if d := session.Steps[session.CurrentStep].Duration; d > 0 {
			started := now
			session.TimerSeconds = d * 60
			session.TimerRunning = true
			session.TimerStartedAt = &started
		}
	case CommandStopTimer:
		session.TimerSeconds = session.Remaining(now)
		session.TimerRunning = false
		session.TimerStartedAt = nil
	case CommandComplete:
		session.Steps[session.CurrentStep].Completed = true
		if session.CurrentStep < last {
			session.CurrentStep++
			session.resetTimer()
			spoken = session.stepText()
		}
	case CommandRepeat:
		spoken = session.stepText()
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save cooking session: %w", err)
	}
	return s.state(session, spoken), nil
}

// Finish records the run as a CookingSession and drops the live state
func (s *CookingService) Finish(ctx context.Context, userID uuid.UUID, sessionID string) (*model.CookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	completed := true
	for _, step := range live.Steps {
		completed = completed && step.Completed
	}
	elapsed := s.now().Sub(live.StartedAt).Minutes()

	record := model.CookingSession{
		UserID:    userID,
		RecipeID:  live.RecipeID,
		StartedAt: live.StartedAt,
		Duration:  int(math.Round(math.Max(elapsed, 0))),
		Completed: completed,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to save cooking session: %w", err)
	}
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to drop live cooking session", zap.String("session_id", sessionID), zap.Error(err))
	}
	return &record, nil
}
